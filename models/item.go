package models

import (
	"time"

	"sweat-battle-system/game"
)

type ItemType string

const (
	ItemTypeWeapon     ItemType = "weapon"
	ItemTypeArmor      ItemType = "armor"
	ItemTypeAccessory  ItemType = "accessory"
	ItemTypeConsumable ItemType = "consumable"
)

type ItemRarity string

const (
	RarityCommon    ItemRarity = "common"
	RarityRare      ItemRarity = "rare"
	RarityEpic      ItemRarity = "epic"
	RarityLegendary ItemRarity = "legendary"
)

// Item is shop reference data.
type Item struct {
	ID          string         `gorm:"primaryKey;size:36" json:"id"`
	Name        string         `gorm:"not null" json:"name"`
	Description string         `json:"description"`
	Type        ItemType       `gorm:"type:varchar(16)" json:"type"`
	Rarity      ItemRarity     `gorm:"type:varchar(16);default:'common'" json:"rarity"`
	Stats       game.ItemStats `gorm:"serializer:json" json:"stats"`
	PriceSweat  *int64         `json:"price_sweat_points,omitempty"`
	ImageURL    string         `json:"image_url"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
}

// InventoryItem is an item owned by a user.
type InventoryItem struct {
	ID         string    `gorm:"primaryKey;size:36" json:"id"`
	UserID     string    `gorm:"index;not null" json:"user_id"`
	ItemID     string    `gorm:"index;not null" json:"item_id"`
	Item       Item      `gorm:"foreignKey:ItemID" json:"item"`
	Quantity   int       `gorm:"default:1" json:"quantity"`
	IsEquipped bool      `gorm:"default:false;index" json:"is_equipped"`
	AcquiredAt time.Time `gorm:"autoCreateTime" json:"acquired_at"`
}
