package handlers

import (
	"fmt"
	"math"
	"net/http"

	"github.com/aaravmahajanofficial/storefront/internal/checkout"
	appErrors "github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/aaravmahajanofficial/storefront/internal/utils"
	"github.com/aaravmahajanofficial/storefront/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type CheckoutHandler struct {
	checkoutService checkout.CheckoutService
	validator       *validator.Validate
}

func NewCheckoutHandler(checkoutService checkout.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkoutService: checkoutService, validator: utils.NewValidator()}
}

// for eg: POST /checkout?mode=buynow
func (h *CheckoutHandler) Begin() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		mode, ok := checkout.ParseMode(r.URL.Query().Get("mode"))
		if !ok {
			response.Error(w, appErrors.AddValidationError("mode", "must be cart or buynow"))
			return
		}

		sess, err := h.checkoutService.Begin(r.Context(), mode)
		if err != nil {
			response.Error(w, err)
			return
		}

		w.Header().Set("Location", "/api/v1/checkout/"+sess.ID)
		response.Success(w, http.StatusCreated, sess)

	}
}

func (h *CheckoutHandler) GetSession() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		sess, err := h.checkoutService.GetSession(r.Context(), r.PathValue("session"))
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, sess)

	}
}

// SaveCandidate takes any body shape; field checks are reported by the
// pipeline so that every field gets its own reason.
func (h *CheckoutHandler) SaveCandidate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		var req models.SaveCandidateRequest
		if err := utils.DecodeJSONBody(r, &req); err != nil {
			response.Error(w, appErrors.BadRequestError("Invalid request body").WithDetail(err.Error()))
			return
		}

		sess, err := h.checkoutService.SaveCandidate(r.Context(), r.PathValue("session"), &req)
		writeStep(w, sess, err)

	}
}

func (h *CheckoutHandler) EditCandidate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		sess, err := h.checkoutService.EditCandidate(r.Context(), r.PathValue("session"))
		writeStep(w, sess, err)

	}
}

func (h *CheckoutHandler) SelectPayment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		var req models.SelectPaymentRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		sess, err := h.checkoutService.SelectPayment(r.Context(), r.PathValue("session"), &req)
		writeStep(w, sess, err)

	}
}

// PlaceOrder commits the session. On success the Refresh header sends the
// client back to the landing view once the notice has been shown.
func (h *CheckoutHandler) PlaceOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		sess, err := h.checkoutService.PlaceOrder(r.Context(), r.PathValue("session"))
		if err != nil {
			writeStep(w, sess, err)
			return
		}

		if sess.Redirect != nil {
			seconds := int(math.Ceil(sess.Redirect.After.Seconds()))
			w.Header().Set("Refresh", fmt.Sprintf("%d; url=%s", seconds, sess.Redirect.To))
		}

		response.Success(w, http.StatusCreated, sess)

	}
}

func (h *CheckoutHandler) Abort() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		sess, err := h.checkoutService.Abort(r.Context(), r.PathValue("session"))
		writeStep(w, sess, err)

	}
}

// writeStep returns the session snapshot with both outcomes so the client can
// follow a forced move back to profile editing.
func writeStep(w http.ResponseWriter, sess *checkout.Session, err error) {
	if err != nil {
		if sess != nil {
			response.Failure(w, err, sess)
			return
		}
		response.Error(w, err)
		return
	}

	response.Success(w, http.StatusOK, sess)
}
