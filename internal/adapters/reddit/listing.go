package reddit

import (
	"strings"
	"time"

	"insight_engine/internal/domain"
)

const (
	kindComment = "t1"
	kindPost    = "t3"
)

// listing is the envelope Reddit wraps search results and comment trees in.
type listing struct {
	Kind string `json:"kind"`
	Data struct {
		After    string `json:"after"`
		Children []struct {
			Kind string `json:"kind"`
			Data thing  `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

// thing holds the fields shared by posts (t3) and comments (t1).
type thing struct {
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	SelfText   string  `json:"selftext"`
	Body       string  `json:"body"`
	Author     string  `json:"author"`
	Score      int     `json:"score"`
	CreatedUTC float64 `json:"created_utc"`
	Permalink  string  `json:"permalink"`
	Subreddit  string  `json:"subreddit"`
}

func (t thing) created() time.Time {
	sec := int64(t.CreatedUTC)
	return time.Unix(sec, 0).UTC()
}

func (t thing) post(channel string) domain.Post {
	if t.Subreddit != "" {
		channel = t.Subreddit
	}
	u := t.Permalink
	if strings.HasPrefix(u, "/") {
		u = permalinkHost + u
	}
	return domain.Post{
		ID:        t.ID,
		Channel:   channel,
		Title:     t.Title,
		Body:      t.SelfText,
		Author:    t.Author,
		Score:     t.Score,
		CreatedAt: t.created(),
		URL:       u,
	}
}

func (t thing) reply() domain.Reply {
	return domain.Reply{
		ID:        t.ID,
		Author:    t.Author,
		Body:      t.Body,
		Score:     t.Score,
		CreatedAt: t.created(),
	}
}
