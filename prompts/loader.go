package prompts

import (
	_ "embed"
)

//go:embed agent_help_center.txt
var AgentHelpCenter string

//go:embed tool_search_articles.txt
var ToolSearchArticlesDesc string
