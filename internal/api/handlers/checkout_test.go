package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aaravmahajanofficial/storefront/internal/api/handlers"
	"github.com/aaravmahajanofficial/storefront/internal/checkout"
	appErrors "github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/aaravmahajanofficial/storefront/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

const sessionID = "3f1c2b1e-7a51-4d7e-9d3c-2a1f0b5e6c77"

func sessionPath() map[string]string {
	return map[string]string{"session": sessionID}
}

func TestBeginCheckout(t *testing.T) {
	t.Run("Success - cart mode by default", func(t *testing.T) {
		// Arrange
		mockCheckout := new(mockCheckoutService)
		h := handlers.NewCheckoutHandler(mockCheckout)

		sess := &checkout.Session{ID: sessionID, Mode: checkout.ModeCart, State: checkout.StateProfileReview}
		mockCheckout.On("Begin", mock.Anything, checkout.ModeCart).Return(sess, nil).Once()

		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequest(http.MethodPost, "/api/v1/checkout", nil, nil)

		// Act
		h.Begin().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusCreated, rr.Code)
		assert.Equal(t, "/api/v1/checkout/"+sessionID, rr.Header().Get("Location"))

		var got checkout.Session
		testutils.DecodeResponse(t, rr, &got)
		assert.Equal(t, checkout.StateProfileReview, got.State)
		mockCheckout.AssertExpectations(t)
	})

	t.Run("Success - buy-now mode", func(t *testing.T) {
		// Arrange
		mockCheckout := new(mockCheckoutService)
		h := handlers.NewCheckoutHandler(mockCheckout)
		mockCheckout.On("Begin", mock.Anything, checkout.ModeBuyNow).
			Return(&checkout.Session{ID: sessionID, Mode: checkout.ModeBuyNow}, nil).Once()

		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequest(http.MethodPost, "/api/v1/checkout?mode=buynow", nil, nil)

		// Act
		h.Begin().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusCreated, rr.Code)
		mockCheckout.AssertExpectations(t)
	})

	t.Run("Invalid Input - unknown mode", func(t *testing.T) {
		// Arrange
		mockCheckout := new(mockCheckoutService)
		h := handlers.NewCheckoutHandler(mockCheckout)

		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequest(http.MethodPost, "/api/v1/checkout?mode=wishlist", nil, nil)

		// Act
		h.Begin().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mockCheckout.AssertNotCalled(t, "Begin", mock.Anything, mock.Anything)
	})

	t.Run("Failure - empty source", func(t *testing.T) {
		// Arrange
		mockCheckout := new(mockCheckoutService)
		h := handlers.NewCheckoutHandler(mockCheckout)
		mockCheckout.On("Begin", mock.Anything, checkout.ModeCart).
			Return(nil, appErrors.EmptySourceError("Cart is empty")).Once()

		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequest(http.MethodPost, "/api/v1/checkout", nil, nil)

		// Act
		h.Begin().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
		resp := testutils.DecodeResponse(t, rr, nil)
		assert.Equal(t, appErrors.ErrCodeEmptySource, resp.Error.Code)
	})
}

func TestGetSession(t *testing.T) {
	// Arrange
	mockCheckout := new(mockCheckoutService)
	h := handlers.NewCheckoutHandler(mockCheckout)
	mockCheckout.On("GetSession", mock.Anything, sessionID).Return(nil, appErrors.NotFoundError("Checkout session not found")).Once()

	rr := httptest.NewRecorder()
	req := testutils.CreateTestRequest(http.MethodGet, "/api/v1/checkout/"+sessionID, nil, sessionPath())

	// Act
	h.GetSession().ServeHTTP(rr, req)

	// Assert
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestSaveCandidate(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		// Arrange
		mockCheckout := new(mockCheckoutService)
		h := handlers.NewCheckoutHandler(mockCheckout)

		reqBody := &models.SaveCandidateRequest{Name: "A", Phone: "1", Address: "X", Email: "a@b.co"}
		mockCheckout.On("SaveCandidate", mock.Anything, sessionID, reqBody).
			Return(&checkout.Session{ID: sessionID, State: checkout.StatePaymentSelect}, nil).Once()

		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequest(http.MethodPut, "/api/v1/checkout/"+sessionID+"/candidate", testutils.JSONBody(t, reqBody), sessionPath())

		// Act
		h.SaveCandidate().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)
		mockCheckout.AssertExpectations(t)
	})

	t.Run("Failure - field errors come back with the session", func(t *testing.T) {
		// Arrange
		mockCheckout := new(mockCheckoutService)
		h := handlers.NewCheckoutHandler(mockCheckout)

		fields := map[string]string{"email": "must be a valid email address"}
		sess := &checkout.Session{ID: sessionID, State: checkout.StateProfileReview, Editing: true, FieldErrors: fields}
		mockCheckout.On("SaveCandidate", mock.Anything, sessionID, mock.Anything).
			Return(sess, appErrors.ValidationError("Invalid candidate profile").WithFields(fields)).Once()

		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequest(http.MethodPut, "/api/v1/checkout/"+sessionID+"/candidate",
			testutils.JSONBody(t, models.SaveCandidateRequest{Name: "A", Phone: "1", Address: "X", Email: "nope"}), sessionPath())

		// Act
		h.SaveCandidate().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, rr.Code)

		var got checkout.Session
		resp := testutils.DecodeResponse(t, rr, &got)
		assert.False(t, resp.Success)
		assert.Equal(t, fields, resp.Error.Fields)
		assert.True(t, got.Editing)
		assert.Equal(t, checkout.StateProfileReview, got.State)
	})

	t.Run("Invalid Input - empty body", func(t *testing.T) {
		// Arrange
		mockCheckout := new(mockCheckoutService)
		h := handlers.NewCheckoutHandler(mockCheckout)

		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequest(http.MethodPut, "/api/v1/checkout/"+sessionID+"/candidate", testutils.JSONBody(t, ""), sessionPath())

		// Act
		h.SaveCandidate().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mockCheckout.AssertNotCalled(t, "SaveCandidate", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestEditCandidate(t *testing.T) {
	// Arrange
	mockCheckout := new(mockCheckoutService)
	h := handlers.NewCheckoutHandler(mockCheckout)
	mockCheckout.On("EditCandidate", mock.Anything, sessionID).
		Return(&checkout.Session{ID: sessionID, State: checkout.StateProfileReview, Editing: true}, nil).Once()

	rr := httptest.NewRecorder()
	req := testutils.CreateTestRequest(http.MethodPost, "/api/v1/checkout/"+sessionID+"/candidate/edit", nil, sessionPath())

	// Act
	h.EditCandidate().ServeHTTP(rr, req)

	// Assert
	assert.Equal(t, http.StatusOK, rr.Code)
	var got checkout.Session
	testutils.DecodeResponse(t, rr, &got)
	assert.True(t, got.Editing)
}

func TestSelectPayment(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		// Arrange
		mockCheckout := new(mockCheckoutService)
		h := handlers.NewCheckoutHandler(mockCheckout)

		reqBody := &models.SelectPaymentRequest{PaymentMethod: models.PaymentMethodUPI}
		mockCheckout.On("SelectPayment", mock.Anything, sessionID, reqBody).
			Return(&checkout.Session{ID: sessionID, PaymentMethod: models.PaymentMethodUPI}, nil).Once()

		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequest(http.MethodPut, "/api/v1/checkout/"+sessionID+"/payment", testutils.JSONBody(t, reqBody), sessionPath())

		// Act
		h.SelectPayment().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)
		mockCheckout.AssertExpectations(t)
	})

	t.Run("Invalid Input - unknown method", func(t *testing.T) {
		// Arrange
		mockCheckout := new(mockCheckoutService)
		h := handlers.NewCheckoutHandler(mockCheckout)

		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequest(http.MethodPut, "/api/v1/checkout/"+sessionID+"/payment",
			testutils.JSONBody(t, `{"paymentMethod":"Crypto"}`), sessionPath())

		// Act
		h.SelectPayment().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		resp := testutils.DecodeResponse(t, rr, nil)
		assert.Contains(t, resp.Error.Fields, "paymentMethod")
		mockCheckout.AssertNotCalled(t, "SelectPayment", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Failure - wrong state", func(t *testing.T) {
		// Arrange
		mockCheckout := new(mockCheckoutService)
		h := handlers.NewCheckoutHandler(mockCheckout)
		mockCheckout.On("SelectPayment", mock.Anything, sessionID, mock.Anything).
			Return(&checkout.Session{ID: sessionID, State: checkout.StateProfileReview}, appErrors.InvalidTransitionError("Payment cannot be selected now")).Once()

		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequest(http.MethodPut, "/api/v1/checkout/"+sessionID+"/payment",
			testutils.JSONBody(t, models.SelectPaymentRequest{PaymentMethod: models.PaymentMethodCard}), sessionPath())

		// Act
		h.SelectPayment().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusConflict, rr.Code)
	})
}

func TestPlaceOrder(t *testing.T) {
	t.Run("Success - refresh header points home", func(t *testing.T) {
		// Arrange
		mockCheckout := new(mockCheckoutService)
		h := handlers.NewCheckoutHandler(mockCheckout)

		sess := &checkout.Session{
			ID:       sessionID,
			State:    checkout.StateCommitted,
			Order:    &models.Order{ID: 1700000000000, TotalAmount: 20, PaymentMethod: models.PaymentMethodCOD},
			Redirect: &checkout.Redirect{To: "/", After: 2 * time.Second, Seconds: 2},
		}
		mockCheckout.On("PlaceOrder", mock.Anything, sessionID).Return(sess, nil).Once()

		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequest(http.MethodPost, "/api/v1/checkout/"+sessionID+"/orders", nil, sessionPath())

		// Act
		h.PlaceOrder().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusCreated, rr.Code)
		assert.Equal(t, "2; url=/", rr.Header().Get("Refresh"))

		var got checkout.Session
		testutils.DecodeResponse(t, rr, &got)
		assert.Equal(t, checkout.StateCommitted, got.State)
		if assert.NotNil(t, got.Order) {
			assert.Equal(t, 20.0, got.Order.TotalAmount)
		}
	})

	t.Run("Failure - profile cleared forces edit", func(t *testing.T) {
		// Arrange
		mockCheckout := new(mockCheckoutService)
		h := handlers.NewCheckoutHandler(mockCheckout)

		fields := map[string]string{"name": "is required"}
		sess := &checkout.Session{ID: sessionID, State: checkout.StateProfileReview, Editing: true, FieldErrors: fields}
		mockCheckout.On("PlaceOrder", mock.Anything, sessionID).
			Return(sess, appErrors.IncompleteProfileError("Candidate profile is incomplete").WithFields(fields)).Once()

		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequest(http.MethodPost, "/api/v1/checkout/"+sessionID+"/orders", nil, sessionPath())

		// Act
		h.PlaceOrder().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
		assert.Empty(t, rr.Header().Get("Refresh"))

		var got checkout.Session
		resp := testutils.DecodeResponse(t, rr, &got)
		assert.Equal(t, appErrors.ErrCodeIncompleteProfile, resp.Error.Code)
		assert.True(t, got.Editing)
	})

	t.Run("Failure - unknown session", func(t *testing.T) {
		// Arrange
		mockCheckout := new(mockCheckoutService)
		h := handlers.NewCheckoutHandler(mockCheckout)
		mockCheckout.On("PlaceOrder", mock.Anything, sessionID).Return(nil, appErrors.NotFoundError("Checkout session not found")).Once()

		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequest(http.MethodPost, "/api/v1/checkout/"+sessionID+"/orders", nil, sessionPath())

		// Act
		h.PlaceOrder().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestAbortCheckout(t *testing.T) {
	// Arrange
	mockCheckout := new(mockCheckoutService)
	h := handlers.NewCheckoutHandler(mockCheckout)
	mockCheckout.On("Abort", mock.Anything, sessionID).
		Return(&checkout.Session{ID: sessionID, State: checkout.StateAborted}, nil).Once()

	rr := httptest.NewRecorder()
	req := testutils.CreateTestRequest(http.MethodDelete, "/api/v1/checkout/"+sessionID, nil, sessionPath())

	// Act
	h.Abort().ServeHTTP(rr, req)

	// Assert
	assert.Equal(t, http.StatusOK, rr.Code)
	var got checkout.Session
	testutils.DecodeResponse(t, rr, &got)
	assert.Equal(t, checkout.StateAborted, got.State)
}
