package main

import (
	"fmt"
	"log"
	"os"

	"github.com/ironsheep/image-autocrop-mcp/internal/config"
	"github.com/ironsheep/image-autocrop-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Handle --version and -v flags
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("image-autocrop-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Println("image-autocrop-mcp - MCP server that removes uniform borders from images")
			fmt.Println()
			fmt.Println("Usage: image-autocrop-mcp [options]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("Environment variables:")
			fmt.Println("  IMAGE_MCP_LOG_LEVEL=debug            Enable debug logging and border traces")
			fmt.Println("  IMAGE_MCP_JPEG_QUALITY=95            Quality for saved JPEG crops (1-100)")
			fmt.Println("  IMAGE_MCP_MAX_REQUEST_BYTES=1048576  Longest accepted request line")
			fmt.Println("  IMAGE_MCP_PREVIEW_COLOR=#FF0000      Default outline color for previews")
			fmt.Println()
			fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
			fmt.Println("Configure it in your MCP client (e.g., Claude Desktop).")
			return
		}
	}

	// Configure logging to stderr (stdout is for MCP protocol)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	if cfg.Debug() {
		log.Printf("Image Autocrop MCP Server v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
		log.Printf("Config: %+v", cfg)
	}

	srv := server.New(cfg, log.Default())
	if err := srv.Run(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
