package api

import (
	"net/http"

	"github.com/muhammadolammi/icanmatch/internal/advisor"
)

type adviceRequest struct {
	Message     string `json:"message" validate:"required,max=4000"`
	CVObjectKey string `json:"cvObjectKey" validate:"omitempty,max=1024"`
	CVMimeType  string `json:"cvMimeType" validate:"omitempty,max=255"`
}

type replyResponse struct {
	Reply string `json:"reply"`
}

func (h *Handler) CareerAdvice(w http.ResponseWriter, r *http.Request) {
	var req adviceRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	reply, err := h.coach.Advise(r.Context(), mustUser(r), advisor.AdviceRequest{
		Message:     req.Message,
		CVObjectKey: req.CVObjectKey,
		CVMimeType:  req.CVMimeType,
	})
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondOK(w, r, replyResponse{Reply: reply})
}

func (h *Handler) TalentMatches(w http.ResponseWriter, r *http.Request) {
	reply, err := h.matcher.FindCandidates(r.Context(), mustUser(r), h.catalog.JobSeekers())
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondOK(w, r, replyResponse{Reply: reply})
}
