package home

import (
	"fmt"

	"MerchantBot/bot/flow"
)

// Main menu button labels.
const (
	BtnProfile       = "👤 Профиль"
	BtnInfo          = "📄 Информация"
	BtnCreateInvoice = "🎰 Создать инвойс"
	BtnCreatePayout  = "💎 Создать выплату"
	BtnLogout        = "❌ Выйти из аккаунта"
	BtnMainMenu      = "◀️ Главное меню"

	BtnUsers      = "👤 Пользователи"
	BtnBroadcast  = "✉️ Создать рассылку"
	BtnAddUser    = "👤 Добавить пользователя"
	BtnDeleteUser = "❌ Удалить пользователя"
	BtnAdminMenu  = "👨🏻‍💻 Главное меню"
)

const (
	welcomeMerchant = "Привет, @%s 👋🏻\n\nДобро пожаловать в панель управления мерчанта Konver2pay!"
	welcomeRegular  = "Привет, @%s 👋🏻\n\nЭтот Бот поможет Мерчантам Платформы Konver2pay создавать инвойсы и выплаты.\n\nЧтобы получить доступ к функционалу, обратитесь к Администратору."
	welcomeAdmin    = "👨🏻‍💻 Панель администратора\n\nВыберите действие:"
)

// MerchantMenu is the merchant home reply keyboard.
func MerchantMenu() [][]flow.MenuButton {
	return [][]flow.MenuButton{
		{{Text: BtnProfile}, {Text: BtnInfo}},
		{{Text: BtnCreateInvoice}, {Text: BtnCreatePayout}},
		{{Text: BtnLogout}},
	}
}

// AdminMenu is the administrator home reply keyboard.
func AdminMenu() [][]flow.MenuButton {
	return [][]flow.MenuButton{
		{{Text: BtnUsers}, {Text: BtnBroadcast}},
		{{Text: BtnAddUser}, {Text: BtnDeleteUser}},
	}
}

// Home renders the role-appropriate home screen.
func Home(actor flow.Actor) flow.Response {
	switch actor.Role {
	case flow.RoleAdmin:
		return flow.Response{Text: welcomeAdmin, Menu: AdminMenu()}
	case flow.RoleMerchant:
		return flow.Response{
			Text: fmt.Sprintf(welcomeMerchant, actor.Username),
			Menu: MerchantMenu(),
		}
	default:
		return flow.Response{
			Text:       fmt.Sprintf(welcomeRegular, actor.Username),
			RemoveMenu: true,
		}
	}
}
