package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/teranos/jazzgraph/catalog"
	"github.com/teranos/jazzgraph/errors"
	"github.com/teranos/jazzgraph/graph"
	grapherr "github.com/teranos/jazzgraph/graph/error"
	"github.com/teranos/jazzgraph/logger"
	"github.com/teranos/jazzgraph/version"
)

// HandleWebSocket upgrades the connection and starts an explorer session for it
func (s *Server) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	upgrader := s.upgrader()
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		graphErr := grapherr.New(
			grapherr.CategoryWebSocket,
			err,
			"Failed to upgrade WebSocket connection",
		).WithSubcategory(grapherr.SubcategoryWSUpgrade)

		s.logger.Errorw("WebSocket upgrade failed", graphErr.ToLogFields()...)
		return
	}

	client := newClient(s, conn)

	select {
	case s.register <- client:
	case <-s.ctx.Done():
		_ = conn.Close()
		return
	}

	s.wg.Add(2)
	go func() {
		defer s.wg.Done()
		client.writePump()
	}()
	go func() {
		defer s.wg.Done()
		client.readPump()
	}()
}

// HandleHealth reports liveness, build info and catalog size
func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	info := version.Get()
	status := "ok"
	if st := s.getState(); st != ServerStateRunning {
		status = stateString(st)
	}
	sum := s.catalog.Summary()
	_ = writeJSON(w, http.StatusOK, HealthResponse{
		Status:    status,
		Version:   info.Version,
		Commit:    info.CommitHash,
		BuildTime: info.BuildTime,
		Clients:   s.ClientCount(),
		Artists:   sum.Artists,
		Albums:    sum.Albums,
		Uptime:    time.Since(s.startedAt).Round(time.Second).String(),
	})
}

// HandleGraph builds the filtered, laid out graph.
//
//	GET /api/graph?era=bebop&genre=hard+bop&focus=miles-davis&depth=2&layout=layered&direction=LR
//
// select highlights one artist; from and to mark the path between two artists.
func (s *Server) HandleGraph(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()
	sess := s.newSession(logger.LoggerFromContext(ctx, s.logger))

	depth, err := intParam(r, "depth", sess.Options().DefaultDepth)
	if err != nil {
		writeErr(w, err)
		return
	}
	f := graph.Filter{
		FocusArtistID: q.Get("focus"),
		Depth:         depth,
		Era:           q.Get("era"),
		Genre:         q.Get("genre"),
	}
	if err := sess.SetFilter(f); err != nil {
		writeErr(w, err)
		return
	}

	layout, direction := strings.ToLower(q.Get("layout")), q.Get("direction")
	if layout != "" || direction != "" {
		if layout == "" {
			layout = sess.State().Layout
		}
		if err := sess.SetLayout(layout, direction); err != nil {
			writeErr(w, err)
			return
		}
	}

	if sel := q.Get("select"); sel != "" {
		if err := sess.Select(sel); err != nil {
			writeErr(w, err)
			return
		}
	}
	if from, to := q.Get("from"), q.Get("to"); from != "" && to != "" {
		if _, err := sess.FindPath(from, to); err != nil {
			writeErr(w, err)
			return
		}
	}

	g, err := sess.View(ctx)
	if err != nil {
		writeErr(w, err)
		return
	}
	_ = writeJSON(w, http.StatusOK, g)
}

// HandlePath finds the shortest influence chain. A missing path is a 200 with found=false.
func (s *Server) HandlePath(w http.ResponseWriter, r *http.Request) {
	from, err := requireParam(r, "from")
	if err != nil {
		writeErr(w, err)
		return
	}
	to, err := requireParam(r, "to")
	if err != nil {
		writeErr(w, err)
		return
	}

	res, err := s.newSession(s.logger).FindPath(from, to)
	if err != nil {
		writeErr(w, err)
		return
	}
	_ = writeJSON(w, http.StatusOK, res)
}

// HandleNeighborhood lists the artists within depth hops of focus
func (s *Server) HandleNeighborhood(w http.ResponseWriter, r *http.Request) {
	focus, err := requireParam(r, "focus")
	if err != nil {
		writeErr(w, err)
		return
	}
	sess := s.newSession(s.logger)
	depth, err := intParam(r, "depth", sess.Options().DefaultDepth)
	if err != nil {
		writeErr(w, err)
		return
	}
	if depth < 0 {
		writeErr(w, grapherr.Invalid(grapherr.CategoryQuery, grapherr.SubcategoryInvalidDepth,
			"Depth must be >= 0", "depth %d out of range", depth))
		return
	}

	artists, err := sess.Neighborhood(focus, depth)
	if err != nil {
		writeErr(w, err)
		return
	}
	_ = writeJSON(w, http.StatusOK, NeighborhoodResponse{Focus: focus, Depth: depth, Artists: artists})
}

// HandleSearch finds artists by name or instrument
func (s *Server) HandleSearch(w http.ResponseWriter, r *http.Request) {
	limit, err := intParam(r, "limit", 0)
	if err != nil {
		writeErr(w, err)
		return
	}
	_ = writeJSON(w, http.StatusOK, s.newSession(s.logger).Search(r.URL.Query().Get("q"), limit))
}

// HandleArtist returns one artist with its eras and albums
func (s *Server) HandleArtist(w http.ResponseWriter, r *http.Request) {
	a, err := s.artist(r)
	if err != nil {
		writeErr(w, err)
		return
	}

	resp := ArtistResponse{Artist: a, Eras: []catalog.Era{}, Albums: s.catalog.AlbumsByArtist(a.ID)}
	for _, id := range a.Eras {
		if e, ok := s.catalog.Era(id); ok {
			resp.Eras = append(resp.Eras, *e)
		}
	}
	if resp.Albums == nil {
		resp.Albums = []catalog.Album{}
	}
	_ = writeJSON(w, http.StatusOK, resp)
}

// HandleArtistNetwork returns the mini influence network of one artist
func (s *Server) HandleArtistNetwork(w http.ResponseWriter, r *http.Request) {
	mg, err := s.newSession(s.logger).Network(r.PathValue("id"))
	if err != nil {
		writeErr(w, err)
		return
	}
	_ = writeJSON(w, http.StatusOK, mg)
}

// HandleArtistRelated returns the artists one hop away, split by direction.
// Dangling ids are left out.
func (s *Server) HandleArtistRelated(w http.ResponseWriter, r *http.Request) {
	a, err := s.artist(r)
	if err != nil {
		writeErr(w, err)
		return
	}
	_ = writeJSON(w, http.StatusOK, RelatedArtistsResponse{
		Artist:       a.ID,
		InfluencedBy: s.resolve(a.InfluencedBy),
		Influences:   s.resolve(a.Influences),
	})
}

// HandleAlbumRelated returns albums sharing genre, label, period or artist
func (s *Server) HandleAlbumRelated(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	al, ok := s.catalog.Album(id)
	if !ok {
		writeErr(w, errors.NewNotFoundError("album %q", id))
		return
	}
	limit, err := intParam(r, "limit", catalog.DefaultRelatedLimit)
	if err != nil {
		writeErr(w, err)
		return
	}
	_ = writeJSON(w, http.StatusOK, s.catalog.Related(al, limit))
}

// HandleGenres lists the album genres, labels and artist instruments
func (s *Server) HandleGenres(w http.ResponseWriter, r *http.Request) {
	_ = writeJSON(w, http.StatusOK, map[string][]string{
		"genres":      s.catalog.AllGenres(),
		"labels":      s.catalog.AllLabels(),
		"instruments": s.catalog.AllInstruments(),
	})
}

// HandleEras lists eras in chronological order with their statistics
func (s *Server) HandleEras(w http.ResponseWriter, r *http.Request) {
	_ = writeJSON(w, http.StatusOK, ErasResponse{
		Eras:  s.catalog.ErasInOrder(),
		Stats: s.catalog.EraStatistics(5),
	})
}

func (s *Server) artist(r *http.Request) (*catalog.Artist, error) {
	id := r.PathValue("id")
	a, ok := s.catalog.Artist(id)
	if !ok {
		return nil, grapherr.UnknownArtist(id)
	}
	return a, nil
}

func (s *Server) resolve(ids []string) []*catalog.Artist {
	out := []*catalog.Artist{}
	idx := s.catalog.Index()
	for _, id := range ids {
		if a, ok := idx[id]; ok {
			out = append(out, a)
		}
	}
	return out
}
