// Package access определяет область видимости данных для вызывающего.
// Администратор видит данные всех пользователей, клиент только свои.
package access

import "github.com/magabrotheeeer/fund-subscriptions/internal/models"

// Scope описывает разрешённую область выборки.
type Scope struct {
	// All истинно только для администратора: выборка без фильтра по пользователю.
	All bool
	// UserUID пользователь, чьими данными ограничена выборка.
	UserUID string
}

// Resolve вычисляет область видимости для вызывающего. Запрошенный UID
// учитывается только для администратора; клиент всегда получает область,
// ограниченную его собственным UID, независимо от того, что он запросил.
func Resolve(p models.Principal, requestedUID string) Scope {
	if p.IsAdmin() {
		if requestedUID != "" {
			return Scope{UserUID: requestedUID}
		}
		return Scope{All: true}
	}
	return Scope{UserUID: p.UserUID}
}

// CanView сообщает, вправе ли вызывающий видеть данные владельца ownerUID.
func CanView(p models.Principal, ownerUID string) bool {
	return p.IsAdmin() || p.UserUID == ownerUID
}
