package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/luca-patrignani/hashchain/ledger"
)

type VerifyHandler struct {
	chain *SyncLedger
}

func NewVerifyHandler(chain *SyncLedger) *VerifyHandler {
	return &VerifyHandler{chain: chain}
}

// Verify runs a full verification of the chain
// GET /api/v1/verify
func (h *VerifyHandler) Verify(c *gin.Context) {
	length, err := h.chain.Verify()

	var tampered *ledger.TamperedLinkError
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"valid": true, "length": length})
	case errors.As(err, &tampered):
		c.JSON(http.StatusConflict, gin.H{
			"valid":    false,
			"length":   length,
			"position": tampered.Position,
			"error":    err.Error(),
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
