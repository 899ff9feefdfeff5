// Package lawdex provides an embedded Go client for the lawdex statute
// search core. It wires the search orchestrator, index gateway, and article
// store in-process, without the HTTP layer.
//
//	client, _ := lawdex.New(ctx,
//	    lawdex.WithRedis("localhost:6379", ""),
//	    lawdex.WithStorePath("./data/lawdex.db"),
//	)
//	defer client.Close()
//
//	res, _ := client.Search(ctx, "제218조", lawdex.SearchOptions{})
//	for _, hit := range res.Hits {
//	    fmt.Println(hit.JoCode, hit.Heading, hit.AppScore)
//	}
package lawdex
