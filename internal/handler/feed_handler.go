package handler

import (
	"fmt"
	"math/rand"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// FeedHandler generates the rolling "recent activity" ticker shown on the
// home screen. Entries are synthetic: amounts and names are randomized so the
// feed always looks busy without exposing real user activity.
type FeedHandler struct{}

func NewFeedHandler() *FeedHandler {
	return &FeedHandler{}
}

var feedNames = []string{
	"Thabo M.", "Lerato K.", "Sipho N.", "Annelie V.", "Kagiso D.",
	"Pieter B.", "Nomvula S.", "Johan R.", "Zanele T.", "Riaan F.",
}

var feedActions = []string{"invested", "withdrew", "cashed out", "deposited"}

var feedAmounts = []int{50, 200, 500, 1000, 2000, 5000}

type feedItem struct {
	Name     string    `json:"name"`
	Action   string    `json:"action"`
	Amount   string    `json:"amount"`
	Occurred time.Time `json:"occurred"`
}

func (h *FeedHandler) Feed(c *gin.Context) {
	now := time.Now()
	items := make([]feedItem, 0, 10)
	for i := 0; i < 10; i++ {
		items = append(items, feedItem{
			Name:     feedNames[rand.Intn(len(feedNames))],
			Action:   feedActions[rand.Intn(len(feedActions))],
			Amount:   fmt.Sprintf("R%d", feedAmounts[rand.Intn(len(feedAmounts))]),
			Occurred: now.Add(-time.Duration(rand.Intn(3600)) * time.Second),
		})
	}
	c.JSON(http.StatusOK, gin.H{"feed": items})
}
