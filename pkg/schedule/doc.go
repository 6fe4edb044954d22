/*
Package schedule tracks per-source health and decides which sources run
each poll cycle.

🎯 Purpose:
- Keeps one health record per configured source
- Skips sources that are cooling down or disabled
- Escalates cooldowns for persistently failing sources

🔄 Flow:
1. New registers a record for every configured source
2. Each cycle the engine partitions sources by the states List resolves,
   fetching only the active ones
3. Fetch outcomes arrive via ReportSuccess / ReportFailure
4. Reaching the failure threshold starts a cooldown that doubles per
   further failure, capped at the configured maximum
5. List also backs the status output; ShouldRun answers the same
   run-or-skip question for a single source

A skipped cycle is free: cooling and disabled sources accrue no failure
penalty while they sit out.
*/
package schedule
