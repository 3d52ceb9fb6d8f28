package application

import "github.com/stocksync/inventory-service/internal/domain"

// Slice lookups over whole-collection reads. Index returns let callers
// mutate in place before saving the collection back.

func productIndex(products []domain.Product, id string) int {
	for i := range products {
		if products[i].ID == id {
			return i
		}
	}
	return -1
}

func channelIndex(channels []domain.SalesChannel, id string) int {
	for i := range channels {
		if channels[i].ID == id {
			return i
		}
	}
	return -1
}

func inventoryIndex(items []domain.InventoryItem, productID, channelID string) int {
	for i := range items {
		if items[i].ProductID == productID && items[i].ChannelID == channelID {
			return i
		}
	}
	return -1
}
