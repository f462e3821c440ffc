package models

// RoleID стабильный идентификатор роли
type RoleID int64

// Роли, создаваемые миграцией
const (
	// RoleUser назначается каждому новому пользователю
	RoleUser RoleID = 1
	// RoleAdmin открывает доступ к административным маршрутам
	RoleAdmin RoleID = 2
)

// Имена предустановленных ролей
const (
	RoleUserName  = "User"
	RoleAdminName = "Administrator"
)

// Role представляет роль пользователя
type Role struct {
	Name string `json:"name"`
	ID   RoleID `json:"id"`
}
