package types

import "encoding/json"

// UtilityStatement is a billing statement between a system and its utility.
// Revenue statements cover energy sold to the utility, expense statements
// energy bought from it. The billing period does not necessarily line up
// with the days the energy was generated.
type UtilityStatement struct {
	SystemID        string  `json:"system_id"`
	ContractID      string  `json:"contract_id,omitempty"`
	AmountKWH       float64 `json:"amt_kwh"`
	AmountJPY       float64 `json:"amt_jpy"`
	TaxJPY          float64 `json:"tax_jpy"`
	PeriodStartDate int     `json:"period_start_date"`
	PeriodEndDate   int     `json:"period_end_date"`
	PeriodYear      int     `json:"period_year"`
	PeriodMonth     int     `json:"period_month"`
	Memo            string  `json:"memo,omitempty"`
}

func (u *UtilityStatement) UnmarshalJSON(b []byte) error {
	type alias UtilityStatement
	var a alias
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	if a.SystemID == "" {
		return missingField("system_id")
	}
	*u = UtilityStatement(a)
	return nil
}
