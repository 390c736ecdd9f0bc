package mapping

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/SscSPs/community_currency/internal/core/domain"
	"github.com/SscSPs/community_currency/internal/models"
	"github.com/shopspring/decimal"
)

// EncodeBool converts a flag to its stored form.
func EncodeBool(b bool) []byte {
	return []byte(strconv.FormatBool(b))
}

// DecodeBool parses a stored flag.
func DecodeBool(raw []byte) (bool, error) {
	b, err := strconv.ParseBool(string(raw))
	if err != nil {
		return false, fmt.Errorf("decode flag: %w", err)
	}
	return b, nil
}

// EncodeAmount converts an amount to its stored form.
func EncodeAmount(d decimal.Decimal) []byte {
	return []byte(d.String())
}

// DecodeAmount parses a stored amount.
func DecodeAmount(raw []byte) (decimal.Decimal, error) {
	d, err := domain.ParseAmount(string(raw))
	if err != nil {
		return decimal.Zero, fmt.Errorf("decode amount: %w", err)
	}
	return d, nil
}

// ToModelCurrencyInfo converts a domain CurrencyInfo to its stored model.
func ToModelCurrencyInfo(d domain.CurrencyInfo) models.CurrencyInfo {
	return models.CurrencyInfo{
		Name:           d.Name,
		Symbol:         d.Symbol,
		TotalSupply:    d.TotalSupply.String(),
		CommunityAdmin: string(d.Admin),
	}
}

// ToDomainCurrencyInfo converts a stored CurrencyInfo model to the domain type.
func ToDomainCurrencyInfo(m models.CurrencyInfo) (domain.CurrencyInfo, error) {
	supply, err := domain.ParseAmount(m.TotalSupply)
	if err != nil {
		return domain.CurrencyInfo{}, fmt.Errorf("decode total supply: %w", err)
	}
	return domain.CurrencyInfo{
		Name:        m.Name,
		Symbol:      m.Symbol,
		TotalSupply: supply,
		Admin:       domain.Identity(m.CommunityAdmin),
	}, nil
}

// EncodeCurrencyInfo converts currency metadata to its stored form.
func EncodeCurrencyInfo(d domain.CurrencyInfo) ([]byte, error) {
	raw, err := json.Marshal(ToModelCurrencyInfo(d))
	if err != nil {
		return nil, fmt.Errorf("encode currency info: %w", err)
	}
	return raw, nil
}

// DecodeCurrencyInfo parses stored currency metadata.
func DecodeCurrencyInfo(raw []byte) (domain.CurrencyInfo, error) {
	var m models.CurrencyInfo
	if err := json.Unmarshal(raw, &m); err != nil {
		return domain.CurrencyInfo{}, fmt.Errorf("decode currency info: %w", err)
	}
	return ToDomainCurrencyInfo(m)
}
