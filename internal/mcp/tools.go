package mcp

import "github.com/mark3labs/mcp-go/mcp"

// createSketchTool defines the create_sketch MCP tool.
var createSketchTool = mcp.NewTool("create_sketch",
	mcp.WithDescription("Store a p5.js sketch and return its id and embed URLs."),
	mcp.WithString("js",
		mcp.Required(),
		mcp.Description("Sketch JavaScript, e.g. setup() and draw()"),
	),
	mcp.WithString("html",
		mcp.Description("HTML template (default template if omitted)"),
	),
	mcp.WithString("css",
		mcp.Description("Stylesheet (default stylesheet if omitted)"),
	),
	mcp.WithString("title",
		mcp.Description("Sketch title (default \"Untitled Sketch\")"),
	),
	mcp.WithString("author",
		mcp.Description("Sketch author (default \"Anonymous\")"),
	),
)

// getSketchTool defines the get_sketch MCP tool.
var getSketchTool = mcp.NewTool("get_sketch",
	mcp.WithDescription("Get a stored sketch as JSON."),
	mcp.WithString("id",
		mcp.Required(),
		mcp.Description("Sketch id"),
	),
)

// listSketchesTool defines the list_sketches MCP tool.
var listSketchesTool = mcp.NewTool("list_sketches",
	mcp.WithDescription("List stored sketches, newest first."),
	mcp.WithNumber("limit",
		mcp.Description("Maximum number of sketches to return (default 20)"),
	),
)

// embedCodeTool defines the embed_code MCP tool.
var embedCodeTool = mcp.NewTool("embed_code",
	mcp.WithDescription("Generate the iframe snippet that embeds a stored sketch."),
	mcp.WithString("id",
		mcp.Required(),
		mcp.Description("Sketch id"),
	),
	mcp.WithString("width",
		mcp.Description("CSS width of the container (default 100%)"),
	),
	mcp.WithString("height",
		mcp.Description("CSS height of the container (default 400px)"),
	),
	mcp.WithBoolean("show_code",
		mcp.Description("Show the sketch source under the canvas"),
	),
	mcp.WithBoolean("responsive",
		mcp.Description("Include the responsive style block (default true)"),
	),
	mcp.WithBoolean("autoplay",
		mcp.Description("Start the sketch on load (default true)"),
	),
)

// renderPreviewTool defines the render_preview MCP tool.
var renderPreviewTool = mcp.NewTool("render_preview",
	mcp.WithDescription("Render sketch sources into the standalone preview HTML document."),
	mcp.WithString("js",
		mcp.Required(),
		mcp.Description("Sketch JavaScript"),
	),
	mcp.WithString("html",
		mcp.Description("HTML template (default template if omitted)"),
	),
	mcp.WithString("css",
		mcp.Description("Stylesheet (default stylesheet if omitted)"),
	),
)
