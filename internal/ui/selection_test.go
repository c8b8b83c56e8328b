package ui

import (
	"errors"
	"testing"

	"github.com/Belphemur/ToshoSubtitles/internal/apperrors"
)

func TestSignatureOptions_KeepOrder(t *testing.T) {
	t.Parallel()
	signatures := []string{"English [English, ASS]", "Signs [English, ASS]", "Tiếng Việt [Vietnamese, SRT]"}

	options := SignatureOptions(signatures)
	if len(options) != len(signatures) {
		t.Fatalf("Expected %d options, got %d", len(signatures), len(options))
	}
	for i, option := range options {
		if option.Value != signatures[i] || option.Key != signatures[i] {
			t.Errorf("Option %d: expected %q, got key %q value %q", i, signatures[i], option.Key, option.Value)
		}
	}
}

func TestActionOptions_Localized(t *testing.T) {
	t.Parallel()
	options := ActionOptions(NewPrinter("vi"))

	expected := map[Action]string{
		ActionSelect:   "Chọn phụ đề",
		ActionDownload: "Tải Phụ Đề",
		ActionFetch:    "Lấy Phụ Đề",
		ActionQuit:     "Thoát",
	}
	if len(options) != len(expected) {
		t.Fatalf("Expected %d actions, got %d", len(expected), len(options))
	}
	for _, option := range options {
		if option.Key != expected[option.Value] {
			t.Errorf("Action %s: expected label %q, got %q", option.Value, expected[option.Value], option.Key)
		}
	}
}

func TestSelector_NoSignatures(t *testing.T) {
	t.Parallel()
	_, err := NewSelector(NewPrinter("en"), true).SelectSignature(nil, "")
	if !errors.Is(err, apperrors.ErrNoSelection) {
		t.Fatalf("Expected ErrNoSelection, got %v", err)
	}
}
