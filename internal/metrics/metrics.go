// Package metrics регистрирует prometheus-счётчики сервиса допусков.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RegisteredUsers считает успешные регистрации по признаку администратора.
	RegisteredUsers = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "enft_registered_users_total",
		Help: "Number of successfully registered users",
	}, []string{"is_admin"})

	// MintAttempts считает попытки минта по режиму оплаты газа.
	MintAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "enft_mint_attempts_total",
		Help: "Number of mint transactions submitted to the ledger",
	}, []string{"mode"})

	// MintFailures считает неуспешные минты по режиму оплаты газа.
	MintFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "enft_mint_failures_total",
		Help: "Number of mint transactions rejected by the ledger",
	}, []string{"mode"})

	// ApprovalRequests считает принятые заявки на допуск.
	ApprovalRequests = promauto.NewCounter(prometheus.CounterOpts{
		Name: "enft_approval_requests_total",
		Help: "Number of accepted approval requests",
	})
)

// Режимы минта для лейблов MintAttempts/MintFailures.
const (
	ModeSelf      = "self"
	ModeDelegated = "delegated"
)
