package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"gymAPI/internal/types/exercise"
	"gymAPI/services"
)

type ExerciseHandler struct {
	exerciseService *services.ExerciseService
	logger          *zap.Logger
}

func NewExerciseHandler(exerciseService *services.ExerciseService, logger *zap.Logger) *ExerciseHandler {
	return &ExerciseHandler{exerciseService: exerciseService, logger: logger}
}

func (h *ExerciseHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := withTimeout(r)
	defer cancel()

	q := r.URL.Query()
	filter := exercise.ListFilter{
		Difficulty:   exercise.Difficulty(q.Get("difficulty")),
		TargetMuscle: q.Get("targetMuscle"),
	}

	list, err := h.exerciseService.List(ctx, filter)
	if err != nil {
		respondWithServiceError(w, h.logger, err, "Failed to fetch exercise types")
		return
	}
	respondWithData(w, http.StatusOK, list)
}

func (h *ExerciseHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := withTimeout(r)
	defer cancel()

	e, err := h.exerciseService.Get(ctx, pathVar(r, "id"))
	if err != nil {
		respondWithServiceError(w, h.logger, err, "Failed to fetch exercise type")
		return
	}
	respondWithData(w, http.StatusOK, e)
}

func (h *ExerciseHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := withTimeout(r)
	defer cancel()

	var req exercise.CreateExerciseTypeRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	userID, _ := callerID(ctx)
	e, err := h.exerciseService.Create(ctx, userID, req.Definition())
	if err != nil {
		respondWithServiceError(w, h.logger, err, "Failed to create exercise type")
		return
	}
	respondWithDataMessage(w, http.StatusCreated, e, "Exercise type created successfully")
}

func (h *ExerciseHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := withTimeout(r)
	defer cancel()

	var req exercise.UpdateExerciseTypeRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	userID, _ := callerID(ctx)
	e, err := h.exerciseService.Update(ctx, userID, pathVar(r, "id"), req.Definition())
	if err != nil {
		respondWithServiceError(w, h.logger, err, "Failed to update exercise type")
		return
	}
	respondWithDataMessage(w, http.StatusOK, e, "Exercise type updated successfully")
}

func (h *ExerciseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := withTimeout(r)
	defer cancel()

	userID, _ := callerID(ctx)
	if err := h.exerciseService.Delete(ctx, userID, pathVar(r, "id")); err != nil {
		respondWithServiceError(w, h.logger, err, "Failed to delete exercise type")
		return
	}
	respondWithMessage(w, http.StatusOK, "Exercise type deleted successfully")
}
