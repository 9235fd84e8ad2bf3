package network

import (
	"errors"
	"net/http"
	"strconv"

	"Draughts/game/core"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the JSON API and the websocket endpoint.
func RegisterRoutes(r gin.IRouter, s *GameSession) {
	r.GET("/ws", func(c *gin.Context) { HandleWebSocket(c, s) })

	api := r.Group("/api")
	api.GET("/state", s.getState)
	api.POST("/move", s.postMove)
	api.GET("/pieces/:row/:col", s.getPiece)
	api.GET("/players/:name", s.getPlayer)
	api.GET("/winner", s.getWinner)
	api.GET("/history", s.getHistory)
}

// statusFor maps a rule violation to an HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, core.ErrInvalidPlayer):
		return http.StatusNotFound
	case errors.Is(err, core.ErrInvalidSquare):
		return http.StatusUnprocessableEntity
	case errors.Is(err, core.ErrOutOfTurn):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

func abortWith(c *gin.Context, err error) {
	c.AbortWithStatusJSON(statusFor(err), ErrorContent{Kind: core.KindOf(err), Message: err.Error()})
}

func (s *GameSession) getState(c *gin.Context) {
	c.JSON(http.StatusOK, s.State())
}

func (s *GameSession) postMove(c *gin.Context) {
	var req MoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, ErrorContent{Message: err.Error()})
		return
	}
	res, err := s.PlayMove(req.Player, *req.From, *req.To)
	if err != nil {
		abortWith(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (s *GameSession) getPiece(c *gin.Context) {
	row, rerr := strconv.Atoi(c.Param("row"))
	col, cerr := strconv.Atoi(c.Param("col"))
	if rerr != nil || cerr != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, ErrorContent{Message: "row and col must be integers"})
		return
	}

	s.mu.Lock()
	label, err := s.Game.PieceDetails(core.Position{Row: row, Col: col})
	s.mu.Unlock()
	if err != nil {
		abortWith(c, err)
		return
	}
	var body struct {
		Label *string `json:"label"`
	}
	if label != "" {
		body.Label = &label
	}
	c.JSON(http.StatusOK, body)
}

func (s *GameSession) getPlayer(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pl, err := s.Game.Player(c.Param("name"))
	if err != nil {
		abortWith(c, err)
		return
	}
	c.JSON(http.StatusOK, playerState(pl))
}

func (s *GameSession) getWinner(c *gin.Context) {
	s.mu.Lock()
	w := s.Game.Winner()
	s.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{
		"winner":   w,
		"finished": w != core.NoWinner,
	})
}

func (s *GameSession) getHistory(c *gin.Context) {
	s.mu.Lock()
	hist := s.Game.History()
	s.mu.Unlock()

	c.JSON(http.StatusOK, hist)
}
