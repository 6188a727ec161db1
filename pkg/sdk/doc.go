// Package solrgeo builds SolR query parameters with extended attribute
// filters, without running the HTTP server.
//
// The geodist filter sorts results by distance to a reference point and
// optionally restricts them to a radius:
//
//	client, _ := solrgeo.New(ctx, solrgeo.WithMemory())
//	_, _ = client.Attributes().Upsert(ctx, "article", "location", "ezgmaplocation")
//
//	res, _ := client.Query().
//	    Sort("score desc").
//	    Near("article/location", 46.75984, 1.738281).
//	    Within(5).
//	    Do(ctx)
//	// res.QueryString: ...&sfield=attr_location_gpt&pt=1.738281%2C46.75984&sort=geodist%28%29+asc%2Cscore+desc...
//
// Attribute definitions live in Valkey or Redis (WithValkey, WithRedis) or
// in process memory (WithMemory).
package solrgeo
