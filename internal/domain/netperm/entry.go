package netperm

import (
	"errors"
	"net/netip"
	"strings"
	"time"

	"peerperm/internal/netaddr"
)

// BindEntry is a stored address-bound permission grant, configured once and
// read-only afterwards.
type BindEntry struct {
	ID          string         `json:"id"`
	Spec        string         `json:"spec"`
	Flags       Flags          `json:"flags"`
	Permissions []string       `json:"permissions"`
	Addr        netip.AddrPort `json:"addr"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// WhitelistEntry is a stored subnet-bound permission grant.
type WhitelistEntry struct {
	ID          string            `json:"id"`
	Spec        string            `json:"spec"`
	Flags       Flags             `json:"flags"`
	Permissions []string          `json:"permissions"`
	Subnet      netip.Prefix      `json:"subnet"`
	Direction   netaddr.Direction `json:"direction"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// BindCreateRequest carries a raw address-bound permission spec.
type BindCreateRequest struct {
	Spec string `json:"spec" binding:"required"`
}

// Validate validates the bind creation request.
func (r *BindCreateRequest) Validate() error {
	if strings.TrimSpace(r.Spec) == "" {
		return errors.New("spec cannot be empty")
	}
	return nil
}

// WhitelistCreateRequest carries a raw subnet-bound permission spec.
type WhitelistCreateRequest struct {
	Spec string `json:"spec" binding:"required"`
}

// Validate validates the whitelist creation request.
func (r *WhitelistCreateRequest) Validate() error {
	if strings.TrimSpace(r.Spec) == "" {
		return errors.New("spec cannot be empty")
	}
	return nil
}
