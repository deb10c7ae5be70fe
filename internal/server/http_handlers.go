package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/arqdb/arqdb/pkg/engine"
	"github.com/arqdb/arqdb/pkg/graph"
)

// registerHTTPHandlers sets up the REST API routes.
func (s *Server) registerHTTPHandlers(mux *http.ServeMux) {
	mux.HandleFunc("POST /graphs", s.handleGraphCreate)
	mux.HandleFunc("GET /graphs", s.handleGraphList)
	mux.HandleFunc("GET /graphs/{name}", s.handleGraphInfo)
	mux.HandleFunc("DELETE /graphs/{name}", s.handleGraphDrop)

	mux.HandleFunc("POST /graphs/{name}/nodes", s.handleNodeAdd)
	mux.HandleFunc("POST /graphs/{name}/nodes/find", s.handleNodeFind)
	mux.HandleFunc("DELETE /graphs/{name}/nodes/{idx}", s.handleNodeRemove)
	mux.HandleFunc("GET /graphs/{name}/nodes/{idx}/out", s.handleNodeOut)
	mux.HandleFunc("GET /graphs/{name}/nodes/{idx}/in", s.handleNodeIn)

	mux.HandleFunc("POST /graphs/{name}/edges", s.handleEdgeAdd)

	mux.HandleFunc("GET /graphs/{name}/boundary", s.handleBoundary)
	mux.HandleFunc("GET /graphs/{name}/distance", s.handleDistance)
	mux.HandleFunc("GET /graphs/{name}/path", s.handlePath)
	mux.HandleFunc("GET /graphs/{name}/stats", s.handleStats)
}

// --- Graph lifecycle ---

func (s *Server) handleGraphCreate(w http.ResponseWriter, r *http.Request) {
	var req createGraphRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeHTTPError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}

	info, err := s.Engine.CreateGraph(req.Name)
	if err != nil {
		s.writeEngineError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, info)
}

func (s *Server) handleGraphList(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Engine.ListGraphs())
}

func (s *Server) handleGraphInfo(w http.ResponseWriter, r *http.Request) {
	info, err := s.Engine.Info(r.PathValue("name"))
	if err != nil {
		s.writeEngineError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, info)
}

func (s *Server) handleGraphDrop(w http.ResponseWriter, r *http.Request) {
	if err := s.Engine.DropGraph(r.PathValue("name")); err != nil {
		s.writeEngineError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// --- Node operations ---

func (s *Server) handleNodeAdd(w http.ResponseWriter, r *http.Request) {
	node, ok := s.decodeNode(w, r)
	if !ok {
		return
	}

	idx, err := s.Engine.AddNode(r.PathValue("name"), node)
	if err != nil {
		s.writeEngineError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, indexResponse{Index: idx})
}

func (s *Server) handleNodeFind(w http.ResponseWriter, r *http.Request) {
	node, ok := s.decodeNode(w, r)
	if !ok {
		return
	}

	idx, found, err := s.Engine.FindNode(r.PathValue("name"), node)
	if err != nil {
		s.writeEngineError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, findResponse{Index: idx, Found: found})
}

func (s *Server) handleNodeRemove(w http.ResponseWriter, r *http.Request) {
	idx, ok := s.pathIndex(w, r)
	if !ok {
		return
	}

	removed, found, err := s.Engine.RemoveNode(r.PathValue("name"), idx)
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	if !found {
		s.writeHTTPError(w, http.StatusNotFound, "node index out of range")
		return
	}

	writeJSON(w, http.StatusOK, removeNodeResponse{Removed: fromNode(removed)})
}

func (s *Server) handleNodeOut(w http.ResponseWriter, r *http.Request) {
	idx, ok := s.pathIndex(w, r)
	if !ok {
		return
	}

	indexes, err := s.Engine.ReachableFrom(r.PathValue("name"), idx)
	if err != nil {
		s.writeEngineError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, neighboursResponse{Indexes: indexes})
}

func (s *Server) handleNodeIn(w http.ResponseWriter, r *http.Request) {
	idx, ok := s.pathIndex(w, r)
	if !ok {
		return
	}

	indexes, err := s.Engine.CanReach(r.PathValue("name"), idx)
	if err != nil {
		s.writeEngineError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, neighboursResponse{Indexes: indexes})
}

// --- Edge operations ---

func (s *Server) handleEdgeAdd(w http.ResponseWriter, r *http.Request) {
	var req addEdgeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeHTTPError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}

	idx, err := s.Engine.AddEdge(r.PathValue("name"), req.From, req.To)
	if err != nil {
		s.writeEngineError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, indexResponse{Index: idx})
}

// --- Traversal queries ---

func (s *Server) handleBoundary(w http.ResponseWriter, r *http.Request) {
	boundary, found, err := s.Engine.Boundary(r.PathValue("name"))
	if err != nil {
		s.writeEngineError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, boundaryResponse{Boundary: boundary, Found: found})
}

func (s *Server) handleDistance(w http.ResponseWriter, r *http.Request) {
	from, to, ok := s.queryFromTo(w, r)
	if !ok {
		return
	}

	d, err := s.Engine.BFSDistance(r.PathValue("name"), from, to)
	if err != nil {
		s.writeEngineError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, distanceResponse{Distance: d})
}

func (s *Server) handlePath(w http.ResponseWriter, r *http.Request) {
	from, to, ok := s.queryFromTo(w, r)
	if !ok {
		return
	}

	path, found, err := s.Engine.ShortestPath(r.PathValue("name"), from, to)
	if err != nil {
		s.writeEngineError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, pathResponse{Path: path, Found: found})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.Engine.Stats(r.PathValue("name"))
	if err != nil {
		s.writeEngineError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

// --- Helpers ---

// decodeNode reads a tagged node payload from the request body. On failure
// it writes the error response and returns ok=false.
func (s *Server) decodeNode(w http.ResponseWriter, r *http.Request) (graph.Node, bool) {
	var payload nodePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		s.writeHTTPError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return graph.Node{}, false
	}

	node, err := payload.toNode()
	if err != nil {
		s.writeHTTPError(w, http.StatusBadRequest, err.Error())
		return graph.Node{}, false
	}

	return node, true
}

// pathIndex parses the {idx} path segment.
func (s *Server) pathIndex(w http.ResponseWriter, r *http.Request) (int, bool) {
	idx, err := strconv.Atoi(r.PathValue("idx"))
	if err != nil {
		s.writeHTTPError(w, http.StatusBadRequest, "node index must be an integer")
		return 0, false
	}
	return idx, true
}

// queryFromTo parses the from/to query parameters of traversal endpoints.
func (s *Server) queryFromTo(w http.ResponseWriter, r *http.Request) (from, to int, ok bool) {
	var err error
	if from, err = strconv.Atoi(r.URL.Query().Get("from")); err != nil {
		s.writeHTTPError(w, http.StatusBadRequest, "'from' query parameter must be an integer")
		return 0, 0, false
	}
	if to, err = strconv.Atoi(r.URL.Query().Get("to")); err != nil {
		s.writeHTTPError(w, http.StatusBadRequest, "'to' query parameter must be an integer")
		return 0, 0, false
	}
	return from, to, true
}

// writeEngineError maps engine sentinel errors onto HTTP status codes.
func (s *Server) writeEngineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, engine.ErrGraphNotFound):
		s.writeHTTPError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, engine.ErrGraphExists):
		s.writeHTTPError(w, http.StatusConflict, err.Error())
	case errors.Is(err, engine.ErrTooManyGraphs):
		s.writeHTTPError(w, http.StatusConflict, err.Error())
	case errors.Is(err, engine.ErrNodeOutOfRange), errors.Is(err, engine.ErrEmptyName):
		s.writeHTTPError(w, http.StatusBadRequest, err.Error())
	default:
		s.writeHTTPError(w, http.StatusInternalServerError, err.Error())
	}
}

func (s *Server) writeHTTPError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
