package bot

import (
	"errors"

	"gvcargo/internal/database"
)

func (b *Bot) getErrorMessage(err error, lang string) string {
	if err == nil {
		return ""
	}

	if errors.Is(err, database.ErrDuplicateApplicantCode) {
		return b.text("duplicate_code_error", lang)
	}

	if errors.Is(err, database.ErrOrderNotFound) {
		return b.text("order_info_error", lang)
	}

	// Default error message
	return b.text("order_commit_error", lang)
}
