/*
Package serve exposes the hunt over HTTP: a self-contained dashboard
page and the JSON snapshot it polls.

	+-----------+        +--------+
	| dashboard | -----> | /codes |
	|  (embed)  |  xhr   | .json  |
	+-----------+        +---+----+
	                         |
	               reads Store + Scheduler

🎯 Purpose:
- Serves the embedded dashboard at /
- Serves the full snapshot document at /codes.json
- Stays read-only: handlers never touch hunt state

🔄 Flow:
1. New wires the mux over a Store and a Scheduler
2. Run binds the listener and serves until the context is cancelled
3. Cancellation drains in-flight requests before Run returns

The snapshot document mirrors what the poll loop publishes; empty
collections serialize as [] and timestamps that have not happened yet
serialize as null.
*/
package serve
