/*
Package hunt runs the poll cycles that turn raw source posts into
deduplicated invite-code candidates.

	+-----------+     +-----------+     +-----------+
	| Scheduler |---->|  Engine   |---->|   Store   |
	| (run/skip)|     |  (cycle)  |     | (snapshot)|
	+-----------+     +-----+-----+     +-----------+
	                        |
	             +----------+----------+
	             |                     |
	       +-----+-----+         +-----+-----+
	       |  Sources  |         |  Extract  |
	       |  (fetch)  |         |  (codes)  |
	       +-----------+         +-----------+

🎯 Purpose:
- Drives one timer-paced cycle across all eligible sources
- Extracts and deduplicates candidate codes globally
- Publishes an immutable snapshot after every cycle
- Feeds each source's outcome back to the scheduler

🔄 Flow:
1. Ask the scheduler which sources run this cycle
2. Fetch the eligible sources concurrently
3. Extract codes from every successful fetch
4. Stage candidates for codes never seen before
5. Prepend the cycle's candidates to the snapshot, cap the tail
6. Publish atomically, report outcomes, sleep until the next cycle

⚡ Key Responsibilities:
- Global dedup: a code surfaces once, ever
- Merge order: source-list order, then extraction order
- Failure isolation: one dead source never blocks the rest
- Total failure is a degraded cycle, not a crash

🤝 Interfaces:
- Engine: New + RunCycle + Run, the single writer
- Store: Publish/Read snapshot exchange
- Report: per-cycle summary value for rendering

🔍 Example:

	store := hunt.NewStore()
	engine := hunt.New(cfg, sources, schedule.New(cfg), store)
	go engine.Run(ctx)

	snap := store.Read()
	fmt.Printf("%d candidates\n", len(snap.Candidates))
*/
package hunt
