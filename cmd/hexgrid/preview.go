package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"os/exec"
	"runtime"
	"time"

	"github.com/charmbracelet/log"
	"github.com/paulmach/orb"
	"github.com/spf13/cobra"

	"github.com/hexatiles/hexgrid/h3"
	"github.com/hexatiles/hexgrid/internal/h3geom"
	"github.com/hexatiles/hexgrid/internal/ndjson"
	"github.com/hexatiles/hexgrid/internal/props"
)

func newPreviewCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preview [CELL...]",
		Short: "Preview cells on a local map",
		RunE: func(cmd *cobra.Command, args []string) error {
			cells, err := inputCells(cmd, args)
			if err != nil {
				return err
			}
			port, _ := cmd.Flags().GetInt("port")
			autoOpen, _ := cmd.Flags().GetBool("open")

			handler, err := newPreviewHandler(cells, a.logger)
			if err != nil {
				return err
			}
			listener, err := net.Listen("tcp", fmt.Sprintf("127.0.0.1:%d", port))
			if err != nil {
				return fmt.Errorf("listen: %w", err)
			}

			url := fmt.Sprintf("http://%s", listener.Addr().String())
			fmt.Fprintf(cmd.OutOrStdout(), "Preview of %d cells available at %s\n", len(cells), url)
			if autoOpen {
				if err := openBrowser(url); err != nil {
					a.logger.Warn("failed to open browser", "err", err)
				}
			}
			return serve(cmd.Context(), listener, handler)
		},
	}

	cmd.Flags().Int("port", 0, "Port for the preview server (0 selects a random port)")
	cmd.Flags().Bool("open", false, "Open the preview in your default browser")
	addInputFlags(cmd)
	return cmd
}

// serve runs handler on listener until ctx is done.
func serve(ctx context.Context, listener net.Listener, handler http.Handler) error {
	server := &http.Server{Handler: handler, ReadHeaderTimeout: 10 * time.Second}

	errCh := make(chan error, 1)
	go func() {
		if serveErr := server.Serve(listener); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			errCh <- serveErr
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	case serveErr := <-errCh:
		if serveErr != nil {
			return serveErr
		}
	}
	return nil
}

// newPreviewHandler serves the map page, the cells as a GeoJSON feature
// collection and a per-cell detail endpoint.
func newPreviewHandler(cells []h3.Cell, logger *log.Logger) (http.Handler, error) {
	features := make([]ndjson.Feature, 0, len(cells))
	var bound orb.Bound
	for i, c := range cells {
		poly, err := h3geom.PolygonFromCell(c)
		if err != nil {
			return nil, err
		}
		attrs, err := props.CellAttributes(c, nil)
		if err != nil {
			return nil, err
		}
		b := poly.Bound()
		if i == 0 {
			bound = b
		} else {
			bound = bound.Union(b)
		}
		features = append(features, ndjson.Feature{ID: c.String(), Geometry: poly, Properties: attrs})
	}
	collection, err := json.Marshal(ndjson.Collection(features))
	if err != nil {
		return nil, fmt.Errorf("encode cells: %w", err)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		data := map[string]any{
			"CellsPath": "/cells.geojson",
			"Count":     len(cells),
			"Bounds":    [4]float64{bound.Min[0], bound.Min[1], bound.Max[0], bound.Max[1]},
		}
		if err := previewTemplate.Execute(w, data); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
	mux.HandleFunc("GET /cells.geojson", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/geo+json")
		_, _ = w.Write(collection)
	})
	mux.HandleFunc("GET /cell/{id}", func(w http.ResponseWriter, r *http.Request) {
		c, err := parseCellArg(r.PathValue("id"))
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		attrs, err := props.CellAttributes(c, nil)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(attrs); err != nil {
			logger.Debug("write cell detail", "cell", c, "err", err)
		}
	})
	return mux, nil
}

func openBrowser(url string) error {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", url).Start()
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
	default:
		return exec.Command("xdg-open", url).Start()
	}
}

var previewTemplate = template.Must(template.New("preview").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8" />
<title>hexgrid preview ({{.Count}} cells)</title>
<link href="https://unpkg.com/maplibre-gl@4.7.1/dist/maplibre-gl.css" rel="stylesheet" />
<script src="https://unpkg.com/maplibre-gl@4.7.1/dist/maplibre-gl.js"></script>
<style>
  html, body { height: 100%; margin: 0; }
  #map { height: 100%; width: 100%; }
</style>
</head>
<body>
<div id="map"></div>
<script>
(function() {
  const bounds = {{.Bounds}};
  const map = new maplibregl.Map({
    container: "map",
    style: {
      version: 8,
      sources: {
        cells: { type: "geojson", data: window.location.origin + "{{.CellsPath}}" }
      },
      layers: [
        {
          id: "cells-fill",
          type: "fill",
          source: "cells",
          paint: {
            "fill-color": ["case", ["get", "pentagon"], "#f94144", "#277da1"],
            "fill-opacity": 0.55,
            "fill-outline-color": "#1d3557"
          }
        }
      ]
    },
    center: [0, 0],
    zoom: 1
  });

  map.addControl(new maplibregl.NavigationControl());
  map.on("load", function() {
    if (bounds[0] !== bounds[2] || bounds[1] !== bounds[3]) {
      map.fitBounds([[bounds[0], bounds[1]], [bounds[2], bounds[3]]], { padding: 20 });
    }
  });
  map.on("click", "cells-fill", function(e) {
    const f = e.features[0];
    new maplibregl.Popup()
      .setLngLat(e.lngLat)
      .setHTML("<code>" + f.properties.h3 + "</code><br>r" + f.properties.resolution +
        " &middot; " + Number(f.properties.area_km2).toFixed(4) + " km²")
      .addTo(map);
  });
})();
</script>
</body>
</html>`))
