package v1_test

import (
	"net/http"

	v1 "github.com/brickledger/backend/internal/controllers/v1"
	"github.com/brickledger/backend/internal/test"
)

func (suite *TestSuiteStandard) TestGetV1() {
	recorder := suite.request(http.MethodGet, "http://example.com/v1", nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.V1Response
	test.DecodeResponse(suite.T(), &recorder, &response)

	suite.Assert().Equal("http://example.com/v1/gl-accounts", response.Links.GLAccounts)
	suite.Assert().Equal("http://example.com/v1/transactions", response.Links.Transactions)
	suite.Assert().Equal("http://example.com/v1/payments", response.Links.Payments)
	suite.Assert().Equal("http://example.com/v1/periods", response.Links.Periods)
	suite.Assert().Equal("http://example.com/v1/escrow", response.Links.Escrow)
}

func (suite *TestSuiteStandard) TestOptionsV1() {
	recorder := suite.request(http.MethodOptions, "/v1", nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)
}
