// Package validation turns raw submission input into typed commands.
// Constraint checks run before any persistence call; on failure only
// the first violated constraint's message surfaces to the user.
package validation

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/petchan-dev/petchan/internal/errors"
)

type CreateThread struct {
	Title         string   `json:"title" validate:"required,max=100"`
	Content       string   `json:"content" validate:"required,max=2000"`
	CategoryId    string   `json:"categoryId" validate:"required,uuid4"`
	SubCategoryId string   `json:"subCategoryId" validate:"required,uuid4"`
	ImageUrls     []string `json:"imageUrls" validate:"omitempty,max=3,dive,url"`
}

type CreateResponse struct {
	ThreadId  string   `json:"threadId" validate:"required,uuid4"`
	Content   string   `json:"content" validate:"required,max=1000"`
	AnchorTo  string   `json:"anchorTo" validate:"omitempty,uuid4"`
	ImageUrls []string `json:"imageUrls" validate:"omitempty,max=3,dive,url"`
}

type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	return &Validator{validate: validator.New(validator.WithRequiredStructEnabled())}
}

func (v *Validator) Thread(cmd *CreateThread) error {
	return v.firstError(v.validate.Struct(cmd), threadMessages)
}

func (v *Validator) Response(cmd *CreateResponse) error {
	return v.firstError(v.validate.Struct(cmd), responseMessages)
}

// firstError maps the first failed constraint to its user-facing
// message. Violations are never aggregated.
func (v *Validator) firstError(err error, messages map[fieldTag]string) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		first := verrs[0]
		// dived slice elements report as e.g. "ImageUrls[0]"
		field, _, _ := strings.Cut(first.StructField(), "[")
		if msg, ok := messages[fieldTag{field, first.Tag()}]; ok {
			return &apperrors.ValidationError{Message: msg}
		}
		if msg, ok := messages[fieldTag{field, ""}]; ok {
			return &apperrors.ValidationError{Message: msg}
		}
	}
	return &apperrors.ValidationError{Message: msgInvalidInput}
}

type fieldTag struct {
	field string
	tag   string
}

const msgInvalidInput = "入力内容が正しくありません"

var threadMessages = map[fieldTag]string{
	{"Title", "required"}:         "タイトルを入力してください",
	{"Title", "max"}:              "タイトルは100文字以内で入力してください",
	{"Content", "required"}:       "本文を入力してください",
	{"Content", "max"}:            "本文は2000文字以内で入力してください",
	{"CategoryId", ""}:            "カテゴリを選択してください",
	{"SubCategoryId", ""}:         "サブカテゴリを選択してください",
	{"ImageUrls", "max"}:          "画像は3枚まで投稿できます",
	{"ImageUrls", "url"}:          "画像URLが無効です",
}

var responseMessages = map[fieldTag]string{
	{"ThreadId", ""}:        "スレッドIDが無効です",
	{"Content", "required"}: "本文を入力してください",
	{"Content", "max"}:      "本文は1000文字以内で入力してください",
	{"AnchorTo", "uuid4"}:   "アンカーの指定が無効です",
	{"ImageUrls", "max"}:    "画像は3枚まで投稿できます",
	{"ImageUrls", "url"}:    "画像URLが無効です",
}
