package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Hives/noughts-and-crosses/internal/apperror"
	"github.com/Hives/noughts-and-crosses/internal/tictactoe"
)

type moveRequest struct {
	Cell *int `json:"cell" binding:"required"`
}

type jumpRequest struct {
	Step *int `json:"step" binding:"required"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (that *Server) createGame(c *gin.Context) {
	game, err := that.manager.CreateGame(c.Request.Context())
	if err != nil {
		that.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, tictactoe.NewView(game))
}

func (that *Server) getGame(c *gin.Context) {
	game, err := that.manager.GetGame(c.Request.Context(), c.Param("id"))
	if err != nil {
		that.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, tictactoe.NewView(game))
}

func (that *Server) deleteGame(c *gin.Context) {
	if err := that.manager.DeleteGame(c.Request.Context(), c.Param("id")); err != nil {
		that.writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (that *Server) makeMove(c *gin.Context) {
	var req moveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "cell is required"})
		return
	}

	game, applied, err := that.manager.MakeMove(c.Request.Context(), c.Param("id"), *req.Cell)
	if err != nil {
		that.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, tictactoe.NewView(game).WithApplied(applied))
}

func (that *Server) jumpToStep(c *gin.Context) {
	var req jumpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "step is required"})
		return
	}

	game, err := that.manager.JumpToStep(c.Request.Context(), c.Param("id"), *req.Step)
	if err != nil {
		that.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, tictactoe.NewView(game))
}

func (that *Server) restartGame(c *gin.Context) {
	game, err := that.manager.RestartGame(c.Request.Context(), c.Param("id"))
	if err != nil {
		that.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, tictactoe.NewView(game))
}

func (that *Server) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperror.ErrGameNotFound):
		c.JSON(http.StatusNotFound, errorResponse{Error: apperror.ErrGameNotFound.Error()})
	case errors.Is(err, apperror.ErrInvalidCell):
		c.JSON(http.StatusBadRequest, errorResponse{Error: apperror.ErrInvalidCell.Error()})
	case errors.Is(err, apperror.ErrInvalidStep):
		c.JSON(http.StatusBadRequest, errorResponse{Error: apperror.ErrInvalidStep.Error()})
	default:
		that.logger.Error("request failed",
			"path", c.FullPath(),
			"request_id", c.GetString(requestIDKey),
			"error", err,
		)
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}
