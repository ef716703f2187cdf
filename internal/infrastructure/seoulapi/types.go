package seoulapi

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// parkInfoResponse - ответ GetParkInfo
type parkInfoResponse struct {
	GetParkInfo *parkInfoBody `json:"GetParkInfo"`
	Result      *apiResult    `json:"RESULT"`
}

type parkInfoBody struct {
	ListTotalCount int          `json:"list_total_count"`
	Result         apiResult    `json:"RESULT"`
	Rows           []parkingRow `json:"row"`
}

type apiResult struct {
	Code    string `json:"CODE"`
	Message string `json:"MESSAGE"`
}

// parkingRow - строка GetParkInfo. Числа приходят то числом, то строкой.
type parkingRow struct {
	Code           string    `json:"PKLT_CD"`
	Name           string    `json:"PKLT_NM"`
	Address        string    `json:"ADDR"`
	Lat            flexFloat `json:"LAT"`
	Lng            flexFloat `json:"LOT"`
	TotalSpaces    flexFloat `json:"TPKCT"`
	BaseFee        flexFloat `json:"PRK_CRG"`
	BaseMinutes    flexFloat `json:"PRK_HM"`
	AddFee         flexFloat `json:"ADD_CRG"`
	AddUnitMinutes flexFloat `json:"ADD_UNIT_TM_MNT"`
	DailyMaxFee    flexFloat `json:"DLY_MAX_CRG"`
	OperationType  string    `json:"OPER_SE_NM"`
	FeeType        string    `json:"CHGD_FREE_NM"`
	WeekdayOpen    string    `json:"WD_OPER_BGNG_TM"`
	WeekdayClose   string    `json:"WD_OPER_END_TM"`
	Phone          string    `json:"TELNO"`
}

// flexFloat принимает число, строку с числом, пустую строку или null
type flexFloat struct {
	Value *float64
}

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		f.Value = nil
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			f.Value = nil
			return nil
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			// нечисловое значение считаем отсутствующим
			f.Value = nil
			return nil
		}
		f.Value = &v
		return nil
	}

	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	f.Value = &v
	return nil
}

func (f flexFloat) MarshalJSON() ([]byte, error) {
	if f.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*f.Value)
}

// nonZero - значение, если оно есть и не равно 0
func (f flexFloat) nonZero() (float64, bool) {
	if f.Value == nil || *f.Value == 0 {
		return 0, false
	}
	return *f.Value, true
}
