package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/abhisek/mathplace/internal/questiongen"
)

func (s *Server) generateQuestion(c *gin.Context) {
	start := time.Now()

	var req questiongen.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		s.observe(nil, resultBadRequest, start)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	req.ApplyDefaults()

	if _, err := req.Outcome(); err != nil {
		s.observe(req.PreviousAnswer, resultBadRequest, start)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	q, err := s.gen.Generate(ctx, req)
	if err != nil {
		s.observe(req.PreviousAnswer, resultFailure, start)
		s.log.Error("question generation failed",
			zap.String("request_id", c.GetHeader(questiongen.RequestIDHeader)),
			zap.String("current_difficulty", req.CurrentDifficulty),
			zap.Bool("use_skills_list", req.UseSkillsList),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate question"})
		return
	}

	s.observe(req.PreviousAnswer, resultSuccess, start)
	c.JSON(http.StatusOK, q)
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"model":  s.model,
	})
}

func (s *Server) observe(previous *string, result string, start time.Time) {
	s.metrics.requests.WithLabelValues(previousAnswerLabel(previous), result).Inc()
	s.metrics.duration.WithLabelValues(result).Observe(time.Since(start).Seconds())
}
