package config

// ExampleConfig returns a config file listing every option with its default.
func ExampleConfig() string {
	return `# board configuration file
# Every value can be overridden by a BOARD_* environment variable or a flag.

[sources]
# Outline of themes and items: a file path, file:// URL or http(s) URL
outline = "themes.txt"
# Optional content blocks ("[Theme > Item]" headers separated by "---")
content = ""

[storage]
# file | sqlite
backend = "file"
# Defaults to the config directory (~/.board or $BOARD_CONFIG_DIR)
dir = ""
namespace = "programme_2026_statuses_v1"

[remote]
# Keyed page service; leave empty to disable the page view
base_url = ""
api_key = ""
default_page = "football"

[ui]
# fr | en status labels
locale = "fr"
# Reload local sources when they change on disk
watch = true

[log]
# debug | info | warn | error
level = "warn"
`
}
