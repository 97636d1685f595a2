package validation

import (
	"testing"

	"theinsight/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validArticle() models.ArticleRequest {
	return models.ArticleRequest{
		Title:         "Inside the lab",
		Excerpt:       "Short excerpt",
		Content:       "<p>Body</p>",
		CategoryName:  "Tech Trends",
		Author:        "Jane",
		FeaturedImage: "https://cdn.example.com/a.jpg",
	}
}

func TestStruct_ValidArticle(t *testing.T) {
	assert.Nil(t, Struct(validArticle()))
}

func TestStruct_ArticleErrorsUseJSONNames(t *testing.T) {
	req := validArticle()
	req.Title = ""
	req.CategoryName = "Sports"
	req.Status = "archived"

	errs := Struct(req)
	require.Len(t, errs, 3)

	fields := map[string]string{}
	for _, e := range errs {
		fields[e.Field] = e.Message
	}
	assert.Equal(t, "title is required", fields["title"])
	assert.Contains(t, fields["categoryName"], "Research World")
	assert.Contains(t, fields, "status")
}

func TestStruct_AdditionalImagesDive(t *testing.T) {
	req := validArticle()
	req.AdditionalImages = []models.ArticleImage{{URL: "not a url"}}

	errs := Struct(req)
	require.Len(t, errs, 1)
	assert.Equal(t, "additionalImages[0].url", errs[0].Field)
}

func TestStruct_TVShowEnums(t *testing.T) {
	in := models.TVShowInput{
		Title:       "Episode 1",
		Description: "Pilot",
		Duration:    "42:00",
		Category:    "Mind Battles",
		Section:     "Mind Battles",
		Thumbnail:   "thumb.jpg",
		YoutubeURL:  "https://youtube.com/watch?v=1",
	}
	errs := Struct(in)
	require.Len(t, errs, 1)
	assert.Equal(t, "section", errs[0].Field)

	in.Section = "MindBattles"
	assert.Nil(t, Struct(in))
}

func TestStruct_PodcastFormats(t *testing.T) {
	in := models.PodcastInput{
		Title:       "Ep",
		Description: "Desc",
		Duration:    "45 min",
		Image:       "cover.jpg",
		YoutubeURL:  "https://youtu.be/abc",
	}
	assert.Nil(t, Struct(in))

	in.Duration = "45 minutes"
	in.YoutubeURL = "https://vimeo.com/1"
	in.AudioURL = "ftp://files/a.mp3"
	errs := Struct(in)
	assert.Len(t, errs, 3)

	in.Duration = "12:30"
	in.YoutubeURL = ""
	in.AudioURL = ""
	assert.Nil(t, Struct(in))
}
