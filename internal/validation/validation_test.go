package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/petchan-dev/petchan/internal/errors"
)

const (
	validCategoryId    = "b3c41a2e-7d5f-4c8a-9e1b-2f6d8a4c0e13"
	validSubCategoryId = "f47ac10b-58cc-4372-a567-0e02b2c3d479"
	validThreadId      = "9f8b7c6d-5e4f-4a3b-8c2d-1e0f9a8b7c6d"
)

func validThread() CreateThread {
	return CreateThread{
		Title:         "子犬のしつけ",
		Content:       "相談です",
		CategoryId:    validCategoryId,
		SubCategoryId: validSubCategoryId,
	}
}

func validResponse() CreateResponse {
	return CreateResponse{
		ThreadId: validThreadId,
		Content:  "なるほど",
	}
}

func TestThreadValidation(t *testing.T) {
	v := New()

	tests := []struct {
		name    string
		mutate  func(*CreateThread)
		wantMsg string
	}{
		{"valid", func(c *CreateThread) {}, ""},
		{"empty title", func(c *CreateThread) { c.Title = "" }, "タイトルを入力してください"},
		{"title too long", func(c *CreateThread) { c.Title = strings.Repeat("あ", 101) }, "タイトルは100文字以内で入力してください"},
		{"title at limit", func(c *CreateThread) { c.Title = strings.Repeat("あ", 100) }, ""},
		{"empty content", func(c *CreateThread) { c.Content = "" }, "本文を入力してください"},
		{"content too long", func(c *CreateThread) { c.Content = strings.Repeat("い", 2001) }, "本文は2000文字以内で入力してください"},
		{"content at limit", func(c *CreateThread) { c.Content = strings.Repeat("い", 2000) }, ""},
		{"missing category", func(c *CreateThread) { c.CategoryId = "" }, "カテゴリを選択してください"},
		{"malformed category", func(c *CreateThread) { c.CategoryId = "not-a-uuid" }, "カテゴリを選択してください"},
		{"missing sub category", func(c *CreateThread) { c.SubCategoryId = "" }, "サブカテゴリを選択してください"},
		{"too many images", func(c *CreateThread) {
			c.ImageUrls = []string{"https://a.test/1.png", "https://a.test/2.png", "https://a.test/3.png", "https://a.test/4.png"}
		}, "画像は3枚まで投稿できます"},
		{"malformed image url", func(c *CreateThread) { c.ImageUrls = []string{"not a url"} }, "画像URLが無効です"},
		{"three valid images", func(c *CreateThread) {
			c.ImageUrls = []string{"https://a.test/1.png", "https://a.test/2.png", "https://a.test/3.png"}
		}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := validThread()
			tt.mutate(&cmd)

			err := v.Thread(&cmd)
			if tt.wantMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			var verr *apperrors.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.wantMsg, verr.Message)
		})
	}
}

// Only the first violated constraint's message surfaces, violations
// are never aggregated.
func TestThreadValidationFirstErrorWins(t *testing.T) {
	v := New()

	cmd := CreateThread{} // everything missing

	err := v.Thread(&cmd)
	require.Error(t, err)

	var verr *apperrors.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "タイトルを入力してください", verr.Message)
	assert.NotContains(t, verr.Message, "本文")
	assert.NotContains(t, verr.Message, "カテゴリ")
}

func TestResponseValidation(t *testing.T) {
	v := New()

	tests := []struct {
		name    string
		mutate  func(*CreateResponse)
		wantMsg string
	}{
		{"valid", func(c *CreateResponse) {}, ""},
		{"missing thread id", func(c *CreateResponse) { c.ThreadId = "" }, "スレッドIDが無効です"},
		{"malformed thread id", func(c *CreateResponse) { c.ThreadId = "123" }, "スレッドIDが無効です"},
		{"empty content", func(c *CreateResponse) { c.Content = "" }, "本文を入力してください"},
		{"content too long", func(c *CreateResponse) { c.Content = strings.Repeat("う", 1001) }, "本文は1000文字以内で入力してください"},
		{"content at limit", func(c *CreateResponse) { c.Content = strings.Repeat("う", 1000) }, ""},
		{"malformed anchor", func(c *CreateResponse) { c.AnchorTo = "abc" }, "アンカーの指定が無効です"},
		{"valid anchor", func(c *CreateResponse) { c.AnchorTo = validSubCategoryId }, ""},
		{"too many images", func(c *CreateResponse) {
			c.ImageUrls = []string{"https://a.test/1.png", "https://a.test/2.png", "https://a.test/3.png", "https://a.test/4.png"}
		}, "画像は3枚まで投稿できます"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := validResponse()
			tt.mutate(&cmd)

			err := v.Response(&cmd)
			if tt.wantMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			var verr *apperrors.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.wantMsg, verr.Message)
		})
	}
}
