package logging

// Component constants for structured logging
const (
	ComponentStartup  = "startup"
	ComponentConfig   = "config"
	ComponentDecode   = "decode"
	ComponentEncode   = "encode"
	ComponentDiffuse  = "diffuse"
	ComponentResize   = "resize"
	ComponentStorage  = "storage"
	ComponentPipeline = "pipeline"
)
