// Package service orchestrates the anonymous posting pipeline. Each
// submission walks validation, the generic rate limit, the atomic
// create procedure and best-effort cache invalidation, in that order;
// every failure exit maps to exactly one user-facing message.
package service

import (
	"encoding/json"

	"github.com/petchan-dev/petchan/internal/errors"
	"github.com/petchan-dev/petchan/internal/utils"
)

// User-facing messages. Two separate throttle mechanisms carry two
// separate messages: the generic sliding-window limit and the
// persistence-enforced 60s cadence.
const (
	MsgRateLimited    = "リクエスト数が制限を超えました。しばらく待ってから再度お試しください。"
	MsgTooFrequent    = "連続投稿はできません。1分後に再度お試しください。"
	MsgThreadFailed   = "スレッドの作成に失敗しました"
	MsgResponseFailed = "レスの投稿に失敗しました"
)

// SubmitResult is the user-facing outcome contract: the pipeline
// never leaks an exception to the UI layer.
type SubmitResult struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`

	// Kind drives the HTTP status in the handler; not serialized.
	Kind errors.Kind `json:"-"`
}

func succeed(data any) SubmitResult {
	return SubmitResult{Success: true, Data: data}
}

func fail(kind errors.Kind, message string) SubmitResult {
	return SubmitResult{Success: false, Error: message, Kind: kind}
}

// redactedSnapshot serializes a request context for the error log.
// Only shapes and truncated previews: never full content, never
// image bytes.
func redactedSnapshot(fields map[string]any) string {
	b, err := json.Marshal(fields)
	if err != nil {
		return ""
	}
	return string(b)
}

// hashIP pseudonymizes the client address for the error log; unknown
// clients stay blank.
func hashIP(ip string) string {
	if ip == "" {
		return ""
	}
	return utils.HashSHA256(ip)
}

func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
