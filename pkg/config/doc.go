/*
Package config manages configuration parsing and validation for invitehound.

	            +-------------+
	            |   Config    |
	            | (Settings)  |
	            +------+------+
	                   |
	      +-----------+-----------+
	      |           |           |
	+-----+-----+ +---+----+ +----+----+
	|   YAML    | |  HCL   | |  JSON   |
	| Parser    | | Parser | | Parser  |
	+-----------+ +--------+ +---------+

🎯 Purpose:
- Manages configuration loading and parsing
- Validates configuration values and clamps limits
- Carries the source list the hunt polls
- Supports multiple config formats

🔄 Flow:
1. Reads configuration from file (or falls back to built-in defaults)
2. Parses format-specific syntax
3. Applies environment overrides (QUERY, POLL_INTERVAL_SECONDS, MAX_POSTS,
   USER_AGENT, GITHUB_TOKEN)
4. Validates values, fills defaults, clamps numeric limits
5. Provides the validated config to the hunt engine and source adapters

⚡ Key Responsibilities:
- Configuration parsing
- Default value management
- Limit clamping (poll interval floor, per-fetch item ceiling)
- Disable-glob validation for switching sources off by name
- Format abstraction

🤝 Interfaces:
- Parser: Format-specific parsing
- Config: Validated settings access
- SourceDef: One polled surface

🔍 Example:

	cfg, err := config.Load(ctx, "hunt.yaml")
	if err != nil {
		return err
	}

	for _, def := range cfg.Sources {
		if cfg.SourceDisabled(def) {
			continue
		}
		// build the adapter for def
	}
*/
package config
