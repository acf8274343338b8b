package adaptor

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"barber-booking/internal/dto/response"
	"barber-booking/internal/usecase"
	"barber-booking/internal/wizard"
	"barber-booking/pkg/utils"

	"go.uber.org/zap"
)

// decodeJSON reads the body into dst, answering 400 itself on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", map[string]string{"body": err.Error()})
		return false
	}
	return true
}

// handleServiceError maps usecase errors to responses.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	var (
		conflict   *usecase.ConflictError
		validation *usecase.ValidationError
		stepErr    *wizard.StepError
	)

	switch {
	case errors.As(err, &conflict):
		log.Info(operation+" failed - slot taken",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseConflict(w, "The selected time is no longer available, please choose another slot",
			response.ConflictDetail{
				Resource:   conflict.Resource,
				ResourceID: conflict.ResourceID,
				BookingID:  conflict.BookingID,
				StartTime:  conflict.Start,
				EndTime:    conflict.End,
			})

	case errors.As(err, &stepErr):
		log.Debug(operation+" step validation failed",
			zap.Error(err),
			zap.String("step", string(stepErr.Step)))
		utils.ResponseBadRequest(w, stepErr.Message, map[string]string{"step": string(stepErr.Step)})

	case errors.As(err, &validation):
		log.Warn(operation+" validation failed",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, validation.Message, validation.Fields)

	case errors.Is(err, wizard.ErrWrongStep), errors.Is(err, wizard.ErrLastStep):
		log.Debug(operation+" out of step", zap.Error(err))
		utils.ResponseConflict(w, err.Error(), nil)

	case errors.Is(err, usecase.ErrNotFound):
		log.Warn(operation+" failed - not found",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseNotFound(w, err.Error())

	case errors.Is(err, usecase.ErrInvalidTransition):
		log.Warn(operation+" failed - invalid state",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseConflict(w, err.Error(), nil)

	case errors.Is(err, context.DeadlineExceeded):
		log.Warn(operation+" timed out", zap.Error(err))
		utils.ResponseUnavailable(w, "The shop is busy, please try again")

	default:
		log.Error("Failed to "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, "Something went wrong, please try again")
	}
}
