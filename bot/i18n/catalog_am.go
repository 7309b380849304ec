package i18n

// Amharic catalog. Untranslated keys fall back to English.
var catalogAM = map[string]string{
	// main menu
	"welcome": "👋 ሰላም `%s`\n\nወደ ✉️📮 *PostCard Bot* 📬🏠 እንኳን በደህና መጡ።\n" +
		"ፖስት ካርድ መርጠው ለጓደኞችዎ ያጋሩ። ቀላል ነው አይደል? 😉",
	"select_language":     "ቋንቋ ይምረጡ",
	"language_changed":    "የቋንቋ ምርጫዎ ተቀይሯል።",
	"operation_cancelled": "ተግባሩ ተሰርዟል።",
	"settings_title":      "ቅንብሮች",

	// admin panel
	"admin_panel_title":    "🔐 የአስተዳዳሪ ፓነል",
	"users_title":          "ተጠቃሚዎች",
	"postcards_title":      "ፖስት ካርዶች",
	"administrators_title": "👤 አስተዳዳሪዎች",
	"stats_title":          "ስታቲስቲክስ",
	"access_denied":        "ይህ ተግባር ለአስተዳዳሪዎች ብቻ ነው።",

	// categories
	"categories_title":           "ምድቦች",
	"enter_category_name":        "የምድብ ስም ያስገቡ\n\nለመሰረዝ /cancel ይጻፉ",
	"enter_category_description": "የምድብ መግለጫ ያስገቡ\n\nለመሰረዝ /cancel ይጻፉ",
	"edit_category_name":         "%s\n\nአዲስ የምድብ ስም ያስገቡ\n\nለመሰረዝ /cancel፣ ስሙን ለማቆየት /skip ይጻፉ።",
	"edit_category_description":  "%s\n\nአዲስ የምድብ መግለጫ ያስገቡ\n\nለመሰረዝ /cancel፣ መግለጫውን ለማቆየት /skip ይጻፉ።",
	"category_added":             "ምድብ በተሳካ ሁኔታ ታክሏል።",
	"category_edited":            "ምድብ በተሳካ ሁኔታ ተስተካክሏል።",
	"confirm_delete_category":    "ይህን ምድብ መሰረዝ ይፈልጋሉ?",
	"category_deleted":           "ምድብ በተሳካ ሁኔታ ተሰርዟል።",
	"category_not_found":         "📁 ምድብ አልተገኘም",

	// postcards
	"all_postcards":              "በ *%s* ምድብ ውስጥ ያሉ ፖስት ካርዶች በሙሉ",
	"no_postcards":               "በ %s ምድብ ውስጥ ፖስት ካርዶች የሉም",
	"no_category_selected":       "ምንም ምድብ አልተመረጠም። እባክዎ መጀመሪያ ምድብ ይምረጡ",
	"enter_postcard_name":        "የፖስት ካርድ ስም ያስገቡ",
	"enter_postcard_description": "የፖስት ካርድ መግለጫ ያስገቡ",
	"enter_postcard_image":       "የፖስት ካርድ ምስል ይላኩ",
	"postcard_added":             "ፖስት ካርድ በተሳካ ሁኔታ ታክሏል።",
	"edit_postcard_name":         "%s\n\nአዲስ የፖስት ካርድ ስም ያስገቡ\n\nለመሰረዝ /cancel፣ ስሙን ለማቆየት /skip ይጻፉ።",
	"edit_postcard_description":  "%s\n\nአዲስ የፖስት ካርድ መግለጫ ያስገቡ\n\nለመሰረዝ /cancel፣ መግለጫውን ለማቆየት /skip ይጻፉ።",
	"edit_postcard_image":        "አዲስ የፖስት ካርድ ምስል ይላኩ\n\nለመሰረዝ /cancel፣ ምስሉን ለማቆየት /skip ይጻፉ።",
	"postcard_edited":            "ፖስት ካርድ በተሳካ ሁኔታ ተስተካክሏል።",
	"confirm_delete_postcard":    "%s የተባለውን ፖስት ካርድ መሰረዝ ይፈልጋሉ?",
	"postcard_deleted":           "ፖስት ካርድ %s በተሳካ ሁኔታ ተሰርዟል።",
	"postcard_not_found":         "📎 ፖስት ካርዶች አልተገኙም",
	"expected_postcard_image":    "እባክዎ ፎቶ ይላኩ፣ ወይም ለመሰረዝ /cancel ይጻፉ።",

	// send postcard
	"select_category":         "ምድብ ይምረጡ",
	"select_template":         "የፖስት ካርድ አብነት ይምረጡ",
	"enter_sender_name":       "የላኪ ስም ያስገቡ\n\nነባሪ: *%s*\n/skip ነባሪውን ለመጠቀም። /cancel ለመሰረዝ።",
	"enter_receiver_name":     "የተቀባይ ስም ያስገቡ\n\n/cancel ለመሰረዝ።",
	"confirm_send_postcard":   "ይህን ፖስት ካርድ ይላክ?",
	"postcard_caption":        "ፖስት ካርድ ከ %s ለ %s",
	"postcard_ready":          "ፖስት ካርድዎ ዝግጁ ነው",
	"postcard_send_cancelled": "የፖስት ካርድ መላክ ተሰርዟል",

	// administrators
	"no_admins":           "ይህ ቦት አስተዳዳሪዎች የሉትም።",
	"admin_removed":       "አስተዳዳሪ %s በተሳካ ሁኔታ ተወግዷል።",
	"admin_not_found":     "አስተዳዳሪ አልተገኘም።",
	"enter_admin_id":      "የተጠቃሚውን የቴሌግራም መለያ ቁጥር ይላኩ\n\nለመሰረዝ /cancel ይጻፉ",
	"admin_exists":        "%s አስቀድሞ አስተዳዳሪ ነው።",
	"user_not_registered": "በዚህ መለያ ቁጥር የተመዘገበ ተጠቃሚ የለም።",
	"invalid_user_id":     "ልክ ያልሆነ የቴሌግራም መለያ ቁጥር። እባክዎ በትክክለኛ መለያ ቁጥር እንደገና ይሞክሩ። ለመሰረዝ /cancel",
	"admin_detail":        "ስም: *%s*\nየአባት ስም: *%s*\nየተጠቃሚ ስም: @%s\nየተቀላቀለበት ቀን: %s",
	"new_admin":           "አዲስ አስተዳዳሪ\n\n%s",

	// stats
	"total_users":    "ጠቅላላ ተጠቃሚዎች: %d",
	"users_by_date":  "ተጠቃሚዎች በቀን",
	"postcard_stats": "ፖስት ካርዶች: %d (%d ንቁ)\nምድቦች: %d",

	// fallbacks
	"unknown_text":     "አልገባኝም። /start ይሞክሩ።",
	"unexpected_photo": "እዚህ ፎቶ አልጠበቅኩም።",
	"unknown_action":   "ይህ ተግባር ከአሁን በኋላ አይገኝም።",
}
