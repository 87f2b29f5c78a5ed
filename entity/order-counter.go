package entity

// OrderCounter is the persisted per-tag monotonic counter. The external order
// identifier for an allocation is "{tag}_{counter}".
type OrderCounter struct {
	Tag     string `json:"order_id_tag" bson:"order_id_tag"`
	Counter int64  `json:"counter" bson:"counter"`
}
