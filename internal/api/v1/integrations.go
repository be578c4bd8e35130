package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// BankIntegrationQuery 银行接入参数
type BankIntegrationQuery struct {
	BankName string `form:"bank_name" binding:"required,max=128"`
}

// GSTDataQuery GST 数据查询参数
type GSTDataQuery struct {
	GSTIN string `form:"gstin" binding:"required,len=15"`
}

// BankIntegration 银行账户接入（尚未实现）
// GET /bank-integration?bank_name=
func (h *Handler) BankIntegration(c *gin.Context) {
	var q BankIntegrationQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondBindError(c, err)
		return
	}
	respondNotImplemented(c, "bank integration", gin.H{"bank_name": q.BankName})
}

// GSTData GST 申报数据（尚未实现）
// GET /gst-data?gstin=
func (h *Handler) GSTData(c *gin.Context) {
	var q GSTDataQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondBindError(c, err)
		return
	}
	respondNotImplemented(c, "GST data retrieval", gin.H{"gstin": q.GSTIN})
}

func respondNotImplemented(c *gin.Context, feature string, echo gin.H) {
	body := gin.H{"error": feature + " is not implemented"}
	for k, v := range echo {
		body[k] = v
	}
	c.JSON(http.StatusNotImplemented, body)
}
