// Package testgateway is an in-memory stand-in for the FlexPay sandbox,
// implementing the slice of the gateway API the client exercises. It exists
// for tests only; nothing here is part of the runtime contract.
package testgateway

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	flexpay "github.com/flexpay/flexpay-go"
)

// Server holds gateway state behind a single lock. Handlers are safe for
// concurrent use.
type Server struct {
	authToken    string
	gatewayToken string

	mu             sync.Mutex
	paymentMethods map[string]*flexpay.PaymentMethod
	pmOrder        []string
	pmCVV          map[string]string
	transactions   map[string]*flexpay.Transaction
	txByMerchant   map[string]string
	txOrder        []string
}

func New(authToken, gatewayToken string) *Server {
	return &Server{
		authToken:      authToken,
		gatewayToken:   gatewayToken,
		paymentMethods: make(map[string]*flexpay.PaymentMethod),
		pmCVV:          make(map[string]string),
		transactions:   make(map[string]*flexpay.Transaction),
		txByMerchant:   make(map[string]string),
	}
}

// Handler returns the gateway's route table. Every route except the health
// probe requires the bearer credential.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/health", s.handleHealth)

	mux.HandleFunc("POST /paymentmethods", s.handleCreatePaymentMethod)
	mux.HandleFunc("GET /paymentmethods", s.handleListPaymentMethods)
	mux.HandleFunc("GET /paymentmethods/{id}", s.handleGetPaymentMethod)
	mux.HandleFunc("PUT /paymentmethods/{id}", s.handleUpdatePaymentMethod)
	mux.HandleFunc("POST /paymentmethods/{id}/redact", s.handleRedactPaymentMethod)
	mux.HandleFunc("POST /paymentmethods/{id}/recache-cvv", s.handleRecacheCVV)

	mux.HandleFunc("POST /gateways/charge", s.handleCharge)
	mux.HandleFunc("POST /gateways/authorize", s.handleAuthorize)

	mux.HandleFunc("POST /transactions/capture", s.handleCapture)
	mux.HandleFunc("POST /transactions/void", s.handleVoid)
	mux.HandleFunc("POST /transactions/refund", s.handleRefund)
	mux.HandleFunc("GET /transactions", s.handleListTransactions)
	mux.HandleFunc("GET /transactions/{id}", s.handleGetTransaction)
	mux.HandleFunc("GET /transactions/merchant/{mtid}", s.handleGetTransactionByMerchantID)

	return s.requireAuth(mux)
}

func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/api/health") {
			next.ServeHTTP(w, r)
			return
		}
		if r.Header.Get("Authorization") != "Bearer "+s.authToken {
			writeOutcome(w, http.StatusUnauthorized, flexpay.ResponseCodeAPIUnauthorized, "Invalid authorization token.")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "OK"})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// writeOutcome writes a bare envelope: a response code and message with no
// operation payload attached.
func writeOutcome(w http.ResponseWriter, status int, code flexpay.ResponseCode, message string) {
	writeJSON(w, status, flexpay.Envelope{
		ResponseCode: code,
		Message:      message,
	})
}

func newID(prefix string) string {
	raw := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return prefix + raw[:20]
}

func now() flexpay.Timestamp {
	return flexpay.NewTimestamp(time.Now().UTC().Truncate(time.Second))
}

// paginate applies the shared cursor contract to an insertion-ordered id
// list: order by creation, start after the cursor, return up to count ids.
func paginate(order []string, sinceToken string, count int, sortOrder string) ([]string, bool) {
	view := order
	if sortOrder == string(flexpay.SortDescending) {
		view = make([]string, len(order))
		for i, id := range order {
			view[len(order)-1-i] = id
		}
	}

	start := 0
	if sinceToken != "" {
		found := false
		for i, id := range view {
			if id == sinceToken {
				start = i + 1
				found = true
				break
			}
		}
		if !found {
			return nil, false
		}
	}

	end := start + count
	if end > len(view) {
		end = len(view)
	}
	return view[start:end], true
}
