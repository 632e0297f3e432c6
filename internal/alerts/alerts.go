// Package alerts translates the typed errors raised across the module into
// stable user-facing title and message pairs. The CLI renders an alert; logs
// keep the underlying error chain.
package alerts

import (
	"errors"

	"vinoscan/internal/analysis"
	"vinoscan/internal/catalog"
	"vinoscan/internal/csvcodec"
	"vinoscan/internal/staging"
	"vinoscan/internal/storage"
)

// Alert is a rendered failure: a short stable title and a human-readable
// message. The title is safe to match on in scripts.
type Alert struct {
	Title   string
	Message string
}

// FromError classifies err into an alert. Unrecognized errors fall through to
// a generic title with the error text as the message.
func FromError(err error) Alert {
	if err == nil {
		return Alert{}
	}

	var loadErr *catalog.LoadError
	if errors.As(err, &loadErr) {
		return Alert{
			Title:   "Storage Error",
			Message: "Saved cellar data could not be read. Starting with an empty cellar; the previous data is kept until the next save.",
		}
	}

	var writeErr *catalog.WriteError
	if errors.As(err, &writeErr) {
		if errors.Is(err, storage.ErrQuotaExceeded) {
			return Alert{
				Title:   "Storage Full",
				Message: "The cellar could not be saved because storage is full. Remove some entries or images and try again.",
			}
		}
		return Alert{
			Title:   "Storage Error",
			Message: "The cellar could not be saved. Your changes are kept in memory for this session only.",
		}
	}

	switch {
	case errors.Is(err, storage.ErrQuotaExceeded):
		return Alert{
			Title:   "Storage Full",
			Message: "The cellar could not be saved because storage is full. Remove some entries or images and try again.",
		}
	case errors.Is(err, analysis.ErrMissingCredential):
		return Alert{
			Title:   "Analysis Unavailable",
			Message: "No API key is configured. Set analysis.api_key in the config file or the VINOSCAN_API_KEY environment variable.",
		}
	case errors.Is(err, analysis.ErrUnreachable):
		return Alert{
			Title:   "Analysis Failed",
			Message: "The analysis service could not be reached. Check your connection and try again.",
		}
	case errors.Is(err, analysis.ErrEmptyResponse):
		return Alert{
			Title:   "Analysis Failed",
			Message: "The analysis service returned no result for this label. Try another photo or enter the details manually.",
		}
	case errors.Is(err, analysis.ErrMalformedResponse):
		return Alert{
			Title:   "Analysis Failed",
			Message: "The analysis result could not be understood. Try again or enter the details manually.",
		}
	case errors.Is(err, analysis.ErrProvider):
		return Alert{
			Title:   "Analysis Failed",
			Message: "The analysis service reported an error: " + err.Error(),
		}
	case errors.Is(err, csvcodec.ErrMissingHeader):
		return Alert{
			Title:   "Import Failed",
			Message: "CSV is empty or missing headers. Nothing was imported.",
		}
	case errors.Is(err, catalog.ErrConfirmationRequired):
		return Alert{
			Title:   "Confirmation Required",
			Message: "Permanently deleting an entry cannot be undone. Re-run with --yes to confirm.",
		}
	case errors.Is(err, catalog.ErrNotFound):
		return Alert{
			Title:   "Not Found",
			Message: "No entry with that id exists.",
		}
	case errors.Is(err, staging.ErrBusy):
		return Alert{
			Title:   "Scan In Progress",
			Message: "An analysis is already running. Wait for it to finish before starting another.",
		}
	}

	return Alert{Title: "Error", Message: err.Error()}
}
