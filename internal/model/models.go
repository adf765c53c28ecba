package model

// All lists every table AutoMigrate has to manage, in dependency order.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Note{},
	}
}
