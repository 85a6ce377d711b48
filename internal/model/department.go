package model

import (
	"slices"
	"time"
)

// Department groups persons. Department heads and second stage authorities
// decide on the applications for leave of its members.
type Department struct {
	ID                      string    `json:"id"`
	Name                    string    `json:"name"`
	Description             string    `json:"description"`
	MemberIDs               []string  `json:"member_ids"`
	DepartmentHeadIDs       []string  `json:"department_head_ids"`
	SecondStageAuthorityIDs []string  `json:"second_stage_authority_ids"`
	TwoStageApproval        bool      `json:"two_stage_approval"`
	LastModification        time.Time `json:"last_modification"`
}

func (d *Department) HasMember(personID string) bool {
	return slices.Contains(d.MemberIDs, personID)
}

func (d *Department) HasDepartmentHead(personID string) bool {
	return slices.Contains(d.DepartmentHeadIDs, personID)
}

func (d *Department) HasSecondStageAuthority(personID string) bool {
	return slices.Contains(d.SecondStageAuthorityIDs, personID)
}
