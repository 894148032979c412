package describe

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/hashmux/hashmux/content"
	"github.com/hashmux/hashmux/dispatch"
)

// Info identifies the described service.
type Info struct {
	Title   string `json:"title" yaml:"title"`
	Version string `json:"version,omitempty" yaml:"version,omitempty"`
}

// Document is the serializable description of a route table: the routes in
// match order plus the content types the registry handles on each side.
type Document struct {
	Info          Info                 `json:"info" yaml:"info"`
	Routes        []dispatch.RouteInfo `json:"routes" yaml:"routes"`
	RequestTypes  []string             `json:"request_types" yaml:"request_types"`
	ResponseTypes []string             `json:"response_types" yaml:"response_types"`
}

// Spec builds route table documents and registers the endpoints that serve
// them.
type Spec struct {
	info     Info
	registry *content.Registry
}

// New creates a spec builder with the given service info. The registry
// supplies the document's request and response content types; nil falls
// back to content.Default.
func New(info Info, registry *content.Registry) *Spec {
	if registry == nil {
		registry = content.Default
	}
	return &Spec{info: info, registry: registry}
}

// Build assembles the document from the table's current keys. Routes keep
// declaration order, which is also the dispatcher's match order.
func (s *Spec) Build(table *dispatch.RouteTable) Document {
	keys := table.Keys()

	routes := make([]dispatch.RouteInfo, len(keys))
	for i, key := range keys {
		path, method := dispatch.ParseKey(key)
		routes[i] = dispatch.RouteInfo{Key: key, Path: path, Method: method}
	}

	return Document{
		Info:          s.info,
		Routes:        routes,
		RequestTypes:  s.registry.DecoderTypes(),
		ResponseTypes: s.registry.EncoderTypes(),
	}
}

// HandleConfig configures the endpoints registered by Handle.
type HandleConfig struct {
	// JSONFilename is the path for the JSON document endpoint
	// (default: "schema.json"). Set to "-" to disable.
	//
	// Relative paths are joined with the base path:
	//
	//	"schema.json"      -> <basePath>/schema.json
	//	"meta/routes.json" -> <basePath>/meta/routes.json
	//
	// Absolute paths (starting with "/") are used as-is:
	//
	//	"/.well-known/routes.json" -> /.well-known/routes.json
	JSONFilename string

	// YAMLFilename is the path for the YAML document endpoint
	// (default: "schema.yaml"). Set to "-" to disable.
	// Follows the same absolute/relative rules as JSONFilename.
	YAMLFilename string

	// DisableNegotiated disables the content-negotiated endpoint at the
	// base path.
	DisableNegotiated bool
}

// jsonFilename returns the configured JSON filename, defaulting to "schema.json".
func (cfg HandleConfig) jsonFilename() string {
	if cfg.JSONFilename == "" {
		return "schema.json"
	}
	return cfg.JSONFilename
}

// yamlFilename returns the configured YAML filename, defaulting to "schema.yaml".
func (cfg HandleConfig) yamlFilename() string {
	if cfg.YAMLFilename == "" {
		return "schema.yaml"
	}
	return cfg.YAMLFilename
}

// resolvePath returns the full route path for a filename.
// Absolute filenames (starting with "/") are returned as-is.
// Relative filenames are joined under basePath.
func resolvePath(basePath, filename string) string {
	if strings.HasPrefix(filename, "/") {
		return filename
	}
	if basePath == "" {
		return "/" + filename
	}
	return basePath + "/" + filename
}

// Handle registers description endpoints under the given base path. The
// base path is normalized (trailing slash stripped). Depending on config,
// the following GET routes are added to the table:
//
//	<basePath>                 - negotiated document (unless DisableNegotiated)
//	<JSONFilename path>        - document as JSON    (unless JSONFilename is "-")
//	<YAMLFilename path>        - document as YAML    (unless YAMLFilename is "-")
//
// The config parameter is optional; pass nil for defaults:
//
//	spec.Handle(table, "/describe", nil)
//
// Filenames are relative to basePath by default. Use an absolute path
// (starting with "/") to serve the document at an independent location:
//
//	spec.Handle(table, "/describe", &HandleConfig{
//	    JSONFilename: "/.well-known/routes.json",
//	    YAMLFilename: "-",
//	})
//	// /describe               -> negotiated document
//	// /.well-known/routes.json -> JSON document
//
// Both <basePath> and <basePath>/ serve the negotiated document. Each
// endpoint builds the document once on its first request and caches it.
func (s *Spec) Handle(table *dispatch.RouteTable, basePath string, cfg *HandleConfig) {
	if cfg == nil {
		cfg = &HandleConfig{}
	}
	basePath = strings.TrimRight(basePath, "/")

	if file := cfg.jsonFilename(); file != "-" {
		s.registerJSON(table, resolvePath(basePath, file))
	}

	if file := cfg.yamlFilename(); file != "-" {
		s.registerYAML(table, resolvePath(basePath, file))
	}

	if !cfg.DisableNegotiated {
		if basePath == "" {
			// Root base path: register only "/" to avoid an empty key.
			s.registerNegotiated(table, "/")
		} else {
			s.registerNegotiated(table, basePath)
			s.registerNegotiated(table, basePath+"/")
		}
	}
}

// registerJSON adds a route serving the document as indented JSON.
func (s *Spec) registerJSON(table *dispatch.RouteTable, path string) {
	var (
		once     sync.Once
		data     []byte
		buildErr error
	)
	table.Handle(path+"#get", func(*dispatch.Context) (*dispatch.Response, error) {
		once.Do(func() {
			defer func() {
				if rv := recover(); rv != nil {
					buildErr = fmt.Errorf("%v", rv)
				}
			}()
			doc := s.Build(table)
			data, buildErr = json.MarshalIndent(doc, "", "  ")
		})
		if buildErr != nil {
			return nil, fmt.Errorf("describe: serialize document as JSON: %w", buildErr)
		}

		resp := dispatch.NewResponse(http.StatusOK, data)
		resp.Header.Set("Content-Type", "application/json")
		return resp, nil
	})
}

// registerYAML adds a route serving the document as YAML.
func (s *Spec) registerYAML(table *dispatch.RouteTable, path string) {
	var (
		once     sync.Once
		data     []byte
		buildErr error
	)
	table.Handle(path+"#get", func(*dispatch.Context) (*dispatch.Response, error) {
		once.Do(func() {
			defer func() {
				if rv := recover(); rv != nil {
					buildErr = fmt.Errorf("%v", rv)
				}
			}()
			doc := s.Build(table)
			data, buildErr = yaml.Marshal(doc)
		})
		if buildErr != nil {
			return nil, fmt.Errorf("describe: serialize document as YAML: %w", buildErr)
		}

		resp := dispatch.NewResponse(http.StatusOK, data)
		resp.Header.Set("Content-Type", "application/x-yaml")
		return resp, nil
	})
}

// registerNegotiated adds a route serving the document in whichever media
// type the Accept header picks from the negotiable registry.
func (s *Spec) registerNegotiated(table *dispatch.RouteTable, path string) {
	var (
		once     sync.Once
		doc      Document
		buildErr error
	)
	reg := negotiable()
	table.Handle(path+"#get", func(ctx *dispatch.Context) (*dispatch.Response, error) {
		once.Do(func() {
			defer func() {
				if rv := recover(); rv != nil {
					buildErr = fmt.Errorf("%v", rv)
				}
			}()
			doc = s.Build(table)
		})
		if buildErr != nil {
			return nil, fmt.Errorf("describe: build document: %w", buildErr)
		}

		return reg.EncodeResponse(ctx.Request, doc), nil
	})
}

// negotiable returns the registry backing the negotiated endpoint: JSON
// plus both common YAML media type spellings.
func negotiable() *content.Registry {
	reg := content.NewRegistry()
	reg.RegisterEncoder("application/yaml", encodeYAML)
	reg.RegisterEncoder("application/x-yaml", encodeYAML)
	return reg
}

func encodeYAML(v any) (string, error) {
	out, err := yaml.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
