package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
)

type AddBombResponse struct {
	Added bool   `json:"added"`
	Bombs []Bomb `json:"bombs"`
}

type DetonateRequest struct {
	Bombs []BombInput `json:"bombs,omitempty"` // Optional: defaults to the session bombs
}

type DetonateResponse struct {
	Result
	NumBombs int `json:"numBombs"`
	NumEdges int `json:"numEdges"`
}

// corsMiddleware adds CORS headers to allow frontend requests
func corsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		// Handle preflight
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next(w, r)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("⚠️  Failed to encode response: %v\n", err)
	}
}

// GET /bombs, POST /bombs, DELETE /bombs - Manage the session bomb list
func bombsHandler(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		bombs, _ := snapshotSession()
		if bombs == nil {
			bombs = []Bomb{}
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"bombs":    bombs,
			"numBombs": len(bombs),
		})

	case http.MethodPost:
		log.Println("💣 Add bomb request received")

		var req BombInput
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("❌ Invalid request body: %v\n", err)
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		bomb, ok := req.Bomb()
		if !ok {
			log.Println("   ⚠️  Discarded: x, y and radius must be numbers")
			bombs, _ := snapshotSession()
			if bombs == nil {
				bombs = []Bomb{}
			}
			writeJSON(w, http.StatusOK, AddBombResponse{Added: false, Bombs: bombs})
			return
		}

		bombs := addSessionBomb(bomb)
		log.Printf("   ✅ Bomb %d: (X: %g, Y: %g, Radius: %g)\n", len(bombs), bomb.X, bomb.Y, bomb.Radius)
		writeJSON(w, http.StatusOK, AddBombResponse{Added: true, Bombs: bombs})

	case http.MethodDelete:
		clearSession()
		log.Println("🧹 Session bombs cleared")
		writeJSON(w, http.StatusOK, map[string]interface{}{"success": true})

	default:
		log.Printf("❌ Method not allowed: %s\n", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// POST /detonate - Compute the maximum chain reaction
func detonateHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("========================================")
	log.Println("💥 Detonate request received")

	if r.Method != http.MethodPost {
		log.Printf("❌ Method not allowed: %s\n", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req DetonateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		log.Printf("❌ Invalid request body: %v\n", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	fromSession := req.Bombs == nil
	var bombs []Bomb
	if fromSession {
		bombs, _ = snapshotSession()
		log.Printf("   Using %d session bombs\n", len(bombs))
	} else {
		bombs = validateInputs(req.Bombs)
		log.Printf("   Using %d request bombs (%d discarded)\n", len(bombs), len(req.Bombs)-len(bombs))
	}

	graph := BuildDetonationGraph(bombs)
	result := detonateGraph(graph)

	if fromSession {
		storeSessionResult(bombs, result)
	}

	log.Printf("✅ Maximum detonated: %d (trigger %d)\n", result.MaxDetonated, result.Trigger)
	log.Println("========================================")

	writeJSON(w, http.StatusOK, DetonateResponse{
		Result:   result,
		NumBombs: len(bombs),
		NumEdges: graph.EdgeCount(),
	})
}

// GET /detonationGraphLines - Get graph edges as line strings for visualization
func detonationGraphLinesHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		log.Printf("❌ Method not allowed: %s\n", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	bombs, _ := snapshotSession()
	graph := BuildDetonationGraph(bombs)
	lines := graph.LineStrings(bombs)

	log.Printf("📊 Returning %d line segments\n", len(lines))

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"lines":    lines,
		"numNodes": graph.Len(),
		"numEdges": graph.EdgeCount(),
	})
}

// GET /visualization - Bombs and last result as a GeoJSON FeatureCollection
func visualizationHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		log.Printf("❌ Method not allowed: %s\n", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	bombs, result := snapshotSession()
	data, err := ResultFeatureCollection(bombs, result).MarshalJSON()
	if err != nil {
		log.Printf("❌ Failed to marshal feature collection: %v\n", err)
		http.Error(w, "Failed to build visualization", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/geo+json")
	w.Write(data)
}

// GET /health - Health check endpoint
func healthHandler(w http.ResponseWriter, r *http.Request) {
	bombs, result := snapshotSession()

	response := map[string]interface{}{
		"status":    "ready",
		"numBombs":  len(bombs),
		"hasResult": result != nil,
	}
	if len(bombs) > 0 {
		bound := sceneBound(bombs)
		response["boundingBox"] = map[string]float64{
			"minX": bound.Min.X(),
			"minY": bound.Min.Y(),
			"maxX": bound.Max.X(),
			"maxY": bound.Max.Y(),
		}
	}

	writeJSON(w, http.StatusOK, response)
}

func newRouter() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/bombs", corsMiddleware(bombsHandler))
	mux.HandleFunc("/detonate", corsMiddleware(detonateHandler))
	mux.HandleFunc("/detonationGraphLines", corsMiddleware(detonationGraphLinesHandler))
	mux.HandleFunc("/visualization", corsMiddleware(visualizationHandler))
	mux.HandleFunc("/health", corsMiddleware(healthHandler))
	return mux
}

// solve prints the result for a bomb list, one value per line
func solve(out io.Writer, bombs []Bomb) {
	result := Detonate(bombs)
	fmt.Fprintf(out, "%d\n", result.MaxDetonated)
	if result.Trigger >= 0 {
		center := bombs[result.Trigger].Center()
		log.Printf("   Trigger bomb %d at %v detonates %v\n", result.Trigger+1, center, result.Chain)
	}
}

func run(out io.Writer, args []string) error {
	cfg, shouldExit, err := ParseFlags(args, out)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	if cfg.BombsPath != "" {
		bombs, err := LoadBombs(cfg.BombsPath)
		if err != nil {
			return fmt.Errorf("failed to load bombs: %w", err)
		}
		if cfg.SolveOnly {
			solve(out, bombs)
			return nil
		}
		setSessionBombs(bombs)
	}

	log.Println("========================================")
	log.Println("🚀 Chain Detonator Server")
	log.Println("========================================")
	log.Println("Endpoints:")
	log.Println("  GET  /bombs                 - List session bombs")
	log.Println("  POST /bombs                 - Add a bomb (x, y, radius)")
	log.Println("  DEL  /bombs                 - Clear session bombs")
	log.Println("  POST /detonate              - Compute maximum chain reaction")
	log.Println("  GET  /detonationGraphLines  - Get detonation edges for visualization")
	log.Println("  GET  /visualization         - Bombs and result as GeoJSON")
	log.Println("  GET  /health                - Check server status")
	log.Println("")
	log.Printf("Server starting on %s\n", cfg.Addr)
	log.Println("========================================")

	return http.ListenAndServe(cfg.Addr, newRouter())
}

func main() {
	if err := run(os.Stdout, os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}
