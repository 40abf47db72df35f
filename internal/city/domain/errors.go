package domain

import (
	"Realm/modules/kit/errx"
	"fmt"
)

type Code = errx.Code

const (
	CodeCityNotFound     Code = "CITY_NOT_FOUND"
	CodeCityNotOwned     Code = "CITY_NOT_OWNED"
	CodeBuildingNotFound Code = "CITY_BUILDING_NOT_FOUND"
	CodeResearchNotFound Code = "CITY_RESEARCH_NOT_FOUND"
	// CodeRuleRejected 施工/研究前置校验不通过，文案即拒绝原因。
	CodeRuleRejected      Code = "CITY_RULE_REJECTED"
	CodeInvalidParam      Code = "CITY_INVALID_PARAM"
	CodeSystemUnavailable Code = errx.CodeUnavailable
)

var (
	ErrCityNotFound     = errx.NewBiz(CodeCityNotFound, "City not found")
	ErrCityNotOwned     = errx.NewBiz(CodeCityNotOwned, "Unauthorized")
	ErrBuildingNotFound = errx.NewBiz(CodeBuildingNotFound, "Building not found")
	ErrResearchNotFound = errx.NewBiz(CodeResearchNotFound, "Research not found")
	ErrRuleRejected     = errx.NewBiz(CodeRuleRejected, "")
	ErrInvalidParam     = errx.NewBiz(CodeInvalidParam, "")

	ErrSystemUnavailable = errx.ErrUnavailable
)

// Reject 构造一条带文案的前置校验拒绝。
func Reject(format string, args ...any) *errx.Error {
	return ErrRuleRejected.WithMsg(fmt.Sprintf(format, args...))
}

func InvalidParam(msg string) *errx.Error {
	return ErrInvalidParam.WithMsg(msg)
}
