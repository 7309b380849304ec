package i18n

var catalogEN = map[string]string{
	// main menu
	"welcome": "👋 Hello `%s`\n\nWelcome to ✉️📮 *PostCard Bot* 📬🏠.\n" +
		"Pick a postcard and share it with your friends. Easy, right? 😉\n\n" +
		"Brought to you by Backos Technologies.",
	"select_language":     "Select language",
	"language_changed":    "Your language preference has been changed.",
	"operation_cancelled": "Operation cancelled.",
	"settings_title":      "Settings",

	// admin panel
	"admin_panel_title":    "🔐 Admin panel",
	"users_title":          "Users",
	"postcards_title":      "Postcards",
	"administrators_title": "👤 Administrators",
	"stats_title":          "Stats",
	"access_denied":        "This action is available to administrators only.",

	// categories
	"categories_title":           "Categories",
	"enter_category_name":        "Enter category name\n\nType /cancel to cancel",
	"enter_category_description": "Enter category description\n\nType /cancel to cancel",
	"edit_category_name":         "%s\n\nEnter new category name\n\ntype /cancel to cancel or /skip to keep the name.",
	"edit_category_description":  "%s\n\nEnter new category description\n\ntype /cancel to cancel or /skip to keep the description.",
	"category_added":             "Category added successfully.",
	"category_edited":            "Category edited successfully.",
	"confirm_delete_category":    "Are you sure you want to delete this category?",
	"category_deleted":           "Category deleted successfully.",
	"category_not_found":         "📁 Category not found",

	// postcards
	"all_postcards":              "Here are all postcards in category *%s*",
	"no_postcards":               "There are no postcards in category %s",
	"no_category_selected":       "No category selected. Please select category first",
	"enter_postcard_name":        "Enter postcard name",
	"enter_postcard_description": "Enter postcard description",
	"enter_postcard_image":       "Send postcard image",
	"postcard_added":             "Postcard added successfully.",
	"edit_postcard_name":         "%s\n\nEnter new postcard name\n\ntype /cancel to cancel or /skip to keep the name.",
	"edit_postcard_description":  "%s\n\nEnter new postcard description\n\ntype /cancel to cancel or /skip to keep the description.",
	"edit_postcard_image":        "Send new postcard image\n\ntype /cancel to cancel or /skip to keep the image.",
	"postcard_edited":            "Postcard edited successfully.",
	"confirm_delete_postcard":    "Are you sure you want to delete postcard %s?",
	"postcard_deleted":           "Postcard %s deleted successfully.",
	"postcard_not_found":         "📎 Postcards not found",
	"expected_postcard_image":    "Please send a photo, or /cancel to cancel.",

	// send postcard
	"select_category":         "Select category",
	"select_template":         "Select postcard template",
	"enter_sender_name":       "Enter sender name\n\ndefault: *%s*\n/skip to use default name. /cancel to cancel.",
	"enter_receiver_name":     "Enter receiver name\n\n/cancel to cancel.",
	"confirm_send_postcard":   "Send this postcard?",
	"postcard_caption":        "Postcard from %s to %s",
	"postcard_ready":          "Your postcard is ready",
	"postcard_send_cancelled": "Postcard send canceled",

	// administrators
	"no_admins":           "There are no administrators for this bot.",
	"admin_removed":       "Admin %s removed successfully.",
	"admin_not_found":     "Admin not found.",
	"enter_admin_id":      "Send user telegram id\n\ntype /cancel to cancel",
	"admin_exists":        "%s is already admin.",
	"user_not_registered": "User with this id is not registered on the bot.",
	"invalid_user_id":     "Invalid telegram user id. Please try again with a valid telegram id. /cancel to cancel",
	"admin_detail":        "First name: *%s*\nLast name: *%s*\nUsername: @%s\nJoined: %s",
	"new_admin":           "NEW ADMIN\n\n%s",

	// stats
	"total_users":    "Total users: %d",
	"users_by_date":  "Users by date",
	"postcard_stats": "Postcards: %d (%d active)\nCategories: %d",

	// fallbacks
	"unknown_text":     "I did not understand that. Try /start.",
	"unexpected_photo": "I was not expecting a photo here.",
	"unknown_action":   "This action is no longer available.",
}
