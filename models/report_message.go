// SPDX-License-Identifier: GPL-3.0-only

package models

import (
	"time"
)

// ReportMessage is the broker payload published for each collected report.
type ReportMessage struct {
	RID                 string    `json:"rid"`
	ApnData             string    `json:"apn_data"`
	SimOperator         string    `json:"sim_operator"`
	SimOperatorName     string    `json:"sim_operator_name"`
	SimCountry          string    `json:"sim_country"`
	NetworkOperator     string    `json:"network_operator"`
	NetworkOperatorName string    `json:"network_operator_name"`
	NetworkCountry      string    `json:"network_country"`
	Hits                int       `json:"hits"`
	ReceivedAt          time.Time `json:"received_at"`
}

func NewReportMessage(report ApnReport) *ReportMessage {
	return &ReportMessage{
		RID:                 report.RID.String(),
		ApnData:             report.ApnData,
		SimOperator:         report.SimOperator,
		SimOperatorName:     report.SimOperatorName,
		SimCountry:          report.SimCountry,
		NetworkOperator:     report.NetworkOperator,
		NetworkOperatorName: report.NetworkOperatorName,
		NetworkCountry:      report.NetworkCountry,
		Hits:                report.Hits,
		ReceivedAt:          time.Now(),
	}
}
