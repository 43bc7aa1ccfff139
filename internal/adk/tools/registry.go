package tools

import "google.golang.org/adk/tool"

// Registry holds the tools exposed to agents and the tool server
type Registry struct {
	tools []tool.Tool
}

// NewRegistry creates an empty tool registry
func NewRegistry() *Registry {
	return &Registry{
		tools: []tool.Tool{},
	}
}

// Register adds a tool to the registry
func (r *Registry) Register(t tool.Tool) {
	r.tools = append(r.tools, t)
}

// GetAll returns all registered tools
func (r *Registry) GetAll() []tool.Tool {
	return r.tools
}

// Get looks a tool up by name
func (r *Registry) Get(name string) (tool.Tool, bool) {
	for _, t := range r.tools {
		if t.Name() == name {
			return t, true
		}
	}
	return nil, false
}

// Count returns the number of registered tools
func (r *Registry) Count() int {
	return len(r.tools)
}
