package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/luca-patrignani/hashchain/ledger"
)

// BlockResponse pairs a block with its position in the chain
type BlockResponse struct {
	Index int          `json:"index"`
	Block ledger.Block `json:"block"`
}

type appendRequest struct {
	Value *string `json:"value" binding:"required"`
}

// BlockHandler handles block-related API requests
type BlockHandler struct {
	chain *SyncLedger
}

// NewBlockHandler creates a new BlockHandler
func NewBlockHandler(chain *SyncLedger) *BlockHandler {
	return &BlockHandler{
		chain: chain,
	}
}

// List returns every block in chain order
// GET /api/v1/blocks
func (h *BlockHandler) List(c *gin.Context) {
	blocks := h.chain.Blocks()

	resp := make([]BlockResponse, len(blocks))
	for i, b := range blocks {
		resp[i] = BlockResponse{Index: i, Block: b}
	}

	c.JSON(http.StatusOK, resp)
}

// GetLatest returns the tail of the chain
// GET /api/v1/blocks/latest
func (h *BlockHandler) GetLatest(c *gin.Context) {
	block, index := h.chain.Latest()
	c.JSON(http.StatusOK, BlockResponse{Index: index, Block: block})
}

// GetByIndex returns a block by its position
// GET /api/v1/blocks/:index
func (h *BlockHandler) GetByIndex(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid index"})
		return
	}

	block, err := h.chain.Get(index)
	if errors.Is(err, ledger.ErrIndexOutOfRange) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Block not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, BlockResponse{Index: index, Block: block})
}

// Append adds a block carrying the request value
// POST /api/v1/blocks
func (h *BlockHandler) Append(c *gin.Context) {
	var req appendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	block, index := h.chain.Append(*req.Value)
	c.JSON(http.StatusCreated, BlockResponse{Index: index, Block: block})
}
