/*
Package source defines the adapters that pull recent public posts from
external surfaces.

	             +-------------+
	             |   Source    |
	             |  (Fetcher)  |
	             +------+------+
	                    |
	   +--------+-------+-------+--------+
	   |        |       |       |        |
	+--+--+ +---+--+ +--+---+ +-+----+ +-+----+
	|Reddit| |GitHub| |Bluesky| | HN  | | ...  |
	+------+ +------+ +-------+ +-----+ +------+

🎯 Purpose:
- Abstracts post retrieval across very different surfaces
- Normalizes every payload to a flat Item (title, body, url)
- Isolates failures behind SourceError
- Bounds each fetch with a hard timeout and retry budget

🔄 Flow:
1. Configuration defines named sources with a kind
2. The registry maps each kind to an adapter factory
3. BuildAll constructs every adapter in definition order
4. Each cycle calls Fetch on the eligible adapters
5. Items flow to extraction; failures flow to the scheduler

⚡ Key Responsibilities:
- Request shaping (headers, query parameters, auth)
- Payload decoding into the narrow Item shape
- Retry with short exponential backoff
- Per-source politeness delays

🤝 Interfaces:
- Source: Name + Fetch, the whole adapter contract
- Factory: builds an adapter from its SourceDef
- Client: shared retrying HTTP helper

🔍 Example:

	client := source.NewClient(cfg.UserAgent)
	sources, err := source.BuildAll(ctx, cfg, client)
	if err != nil {
		return err
	}
	for _, src := range sources {
		items, err := src.Fetch(ctx)
		var serr *source.SourceError
		if errors.As(err, &serr) {
			log.Printf("%s is down: %v", serr.Source, serr.Err)
		}
	}
*/
package source
