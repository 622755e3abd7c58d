package server

import (
	"encoding/json"
	"fmt"

	"github.com/ironsheep/image-autocrop-mcp/internal/imaging"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "image_autocrop").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		s.logger.Printf("Tool %s failed: %v", params.Name, err)
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Basic Image Information
	case "image_load":
		return s.handleImageLoad(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)

	// Color Operations
	case "image_sample_color":
		return s.handleImageSampleColor(args)
	case "image_sample_colors_multi":
		return s.handleImageSampleColorsMulti(args)
	case "image_compare_colors":
		return s.handleImageCompareColors(args)

	// Region Operations
	case "image_crop":
		return s.handleImageCrop(args)

	// Auto-crop Operations
	case "image_find_bounds":
		return s.handleImageFindBounds(args)
	case "image_autocrop":
		return s.handleImageAutoCrop(args)
	case "image_autocrop_save":
		return s.handleImageAutoCropSave(args)
	case "image_autocrop_batch":
		return s.handleImageAutoCropBatch(args)
	case "image_autocrop_preview":
		return s.handleImageAutoCropPreview(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// On marshal failure it returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// quality resolves a per-call JPEG quality against the configured default.
func (s *Server) quality(q int) (int, error) {
	if q == 0 {
		return s.cfg.JPEGQuality, nil
	}
	if q < 1 || q > 100 {
		return 0, fmt.Errorf("quality %d out of range 1-100", q)
	}
	return q, nil
}

// === Basic Image Information Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.GetDimensions(s.cache, a.Path)
}

// === Color Operation Handlers ===

type imageSampleColorArgs struct {
	Path string `json:"path"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

func (s *Server) handleImageSampleColor(args json.RawMessage) (interface{}, error) {
	var a imageSampleColorArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.SampleColor(img, a.X, a.Y)
}

type imageSampleColorsMultiArgs struct {
	Path   string `json:"path"`
	Points []struct {
		X     int    `json:"x"`
		Y     int    `json:"y"`
		Label string `json:"label,omitempty"`
	} `json:"points"`
}

func (s *Server) handleImageSampleColorsMulti(args json.RawMessage) (interface{}, error) {
	var a imageSampleColorsMultiArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	points := make([]imaging.LabeledPoint, len(a.Points))
	for i, p := range a.Points {
		points[i] = imaging.LabeledPoint{X: p.X, Y: p.Y, Label: p.Label}
	}
	return imaging.SampleColorsMulti(img, points)
}

type imageCompareColorsArgs struct {
	Path   string        `json:"path"`
	Point1 imaging.Point `json:"point1"`
	Point2 imaging.Point `json:"point2"`
}

func (s *Server) handleImageCompareColors(args json.RawMessage) (interface{}, error) {
	var a imageCompareColorsArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.CompareColors(img, a.Point1, a.Point2)
}

// === Region Operation Handlers ===

type imageCropArgs struct {
	Path  string  `json:"path"`
	X1    int     `json:"x1"`
	Y1    int     `json:"y1"`
	X2    int     `json:"x2"`
	Y2    int     `json:"y2"`
	Scale float64 `json:"scale"`
}

func (s *Server) handleImageCrop(args json.RawMessage) (interface{}, error) {
	var a imageCropArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Scale == 0 {
		a.Scale = 1.0
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.Crop(img, a.X1, a.Y1, a.X2, a.Y2, a.Scale)
}

// === Auto-crop Handlers ===

func (s *Server) handleImageFindBounds(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.FindBounds(img, s.debug)
}

type imageAutoCropArgs struct {
	Path  string  `json:"path"`
	Scale float64 `json:"scale"`
}

func (s *Server) handleImageAutoCrop(args json.RawMessage) (interface{}, error) {
	var a imageAutoCropArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Scale == 0 {
		a.Scale = 1.0
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.AutoCrop(img, a.Scale, s.debug)
}

type imageAutoCropSaveArgs struct {
	Path       string `json:"path"`
	OutputPath string `json:"output_path"`
	Quality    int    `json:"quality"`
}

func (s *Server) handleImageAutoCropSave(args json.RawMessage) (interface{}, error) {
	var a imageAutoCropSaveArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	q, err := s.quality(a.Quality)
	if err != nil {
		return nil, err
	}
	return imaging.SaveAutoCrop(s.cache, a.Path, a.OutputPath, imaging.SaveOptions{Quality: q, Logger: s.debug})
}

type imageAutoCropBatchArgs struct {
	Paths     []string `json:"paths"`
	OutputDir string   `json:"output_dir"`
	Quality   int      `json:"quality"`
}

func (s *Server) handleImageAutoCropBatch(args json.RawMessage) (interface{}, error) {
	var a imageAutoCropBatchArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if len(a.Paths) == 0 {
		return nil, fmt.Errorf("paths must not be empty")
	}
	q, err := s.quality(a.Quality)
	if err != nil {
		return nil, err
	}

	res, err := imaging.BatchAutoCrop(s.cache, a.Paths, a.OutputDir, imaging.SaveOptions{Quality: q, Logger: s.debug})
	if res == nil {
		return nil, err
	}
	// Per-file failures travel in res.Error.
	if err != nil {
		s.logger.Printf("Batch auto-crop: %d of %d failed", res.Failed, len(a.Paths))
	}
	if s.debug != nil {
		s.debug.Printf("Batch auto-crop done, %d images cached", s.cache.Len())
	}
	return res, nil
}

type imageAutoCropPreviewArgs struct {
	Path  string `json:"path"`
	Color string `json:"color"`
}

func (s *Server) handleImageAutoCropPreview(args json.RawMessage) (interface{}, error) {
	var a imageAutoCropPreviewArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Color == "" {
		a.Color = s.cfg.PreviewColor
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.Preview(img, a.Color, s.debug)
}
