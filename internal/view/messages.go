package view

var russian = map[Key]string{
	MsgLoginTitle:          "Вход",
	MsgRegisterTitle:       "Регистрация",
	MsgEmail:               "Email",
	MsgPassword:            "Пароль",
	MsgUsername:            "Имя пользователя",
	MsgLoginButton:         "Войти",
	MsgRegisterButton:      "Зарегистрироваться",
	MsgToRegister:          "Нет аккаунта? Зарегистрируйтесь",
	MsgToLogin:             "Уже есть аккаунт? Войдите",
	MsgLogout:              "Выйти",
	MsgLoginFailed:         "Ошибка входа",
	MsgRegisterFailed:      "Ошибка регистрации",
	MsgConnectionFailed:    "Ошибка подключения к серверу",
	MsgInvalidInput:        "Проверьте введённые данные",
	MsgSessionExpired:      "Сессия истекла, войдите снова",
	MsgUploadTitle:         "Загрузить документ",
	MsgDocType:             "Тип документа",
	MsgUploadButton:        "Загрузить",
	MsgSelectFile:          "Выберите файл",
	MsgUploadFailed:        "Ошибка загрузки",
	MsgUploadSuccess:       "Документ успешно загружен!",
	MsgUploadProcessing:    "Документ успешно загружен! Обработка началась...",
	MsgProcessSuccess:      "Документ успешно обработан!",
	MsgProcessFailed:       "Ошибка обработки документа",
	MsgDocumentsTitle:      "Мои документы",
	MsgDocumentsFailed:     "Ошибка загрузки документов",
	MsgEmptyTitle:          "У вас пока нет документов",
	MsgEmptyHint:           "Загрузите первый документ выше",
	MsgFile:                "Файл",
	MsgSize:                "Размер",
	MsgDate:                "Дата",
	MsgTransactionCount:    "Транзакций",
	MsgRecommendationCount: "Рекомендаций",
	MsgProcess:             "Обработать",
	MsgDetails:             "Подробнее",
	MsgRecommendationsBtn:  "💡 Рекомендации (%d)",
	MsgShowText:            "Показать извлеченный текст",
	MsgStatus:              "Статус",
	MsgStatusUploaded:      "Загружен",
	MsgStatusProcessing:    "Обрабатывается",
	MsgStatusProcessed:     "Обработан",
	MsgStatusUnknown:       "Неизвестно",
	MsgTypeReceipt:         "Чек",
	MsgTypeStatement:       "Выписка",
	MsgTypeScreenshot:      "Скриншот",
	MsgDetailsTitle:        "Детали документа",
	MsgTransactionsHeader:  "Транзакции (%d)",
	MsgRecommendationsHdr:  "Рекомендации (%d)",
	MsgNoRecommendations:   "Рекомендации не найдены",
	MsgNoData:              "Нет данных для отображения",
	MsgDetailsNotFound:     "Данные о документе не найдены. Попробуйте обработать документ снова.",
	MsgRecsNotFound:        "Данные о документе не найдены",
	MsgRecommendationN:     "Рекомендация %d",
	MsgPotentialSavings:    "💰 Потенциальная экономия: %s руб",
	MsgSavings:             "Экономия: %s руб",
	MsgSource:              "Источник: %s",
	MsgRecsTitle:           "💡 Рекомендации по оптимизации расходов",
	MsgBack:                "Назад",
	MsgSourceBankTariff:    "Тарифы банков",
	MsgSourceGovTariff:     "Государственные тарифы",
	MsgSourceEducation:     "Финансовая грамотность",
	MsgSourceLLM:           "Анализ ИИ",
	MsgCategoryFood:        "Еда",
	MsgCategoryTransport:   "Транспорт",
	MsgCategoryUtilities:   "Коммунальные услуги",
	MsgCategoryShopping:    "Покупки",
	MsgCategoryEntertain:   "Развлечения",
	MsgCategoryHealthcare:  "Здоровье",
	MsgCategoryEducation:   "Образование",
	MsgCategoryOther:       "Прочее",
	MsgSignedInAs:          "Вы вошли как %s",
	MsgNotSignedIn:         "Вы не вошли в систему",
	MsgTokenExpires:        "Токен доступа действует до %s",
}

var english = map[Key]string{
	MsgLoginTitle:          "Sign in",
	MsgRegisterTitle:       "Sign up",
	MsgEmail:               "Email",
	MsgPassword:            "Password",
	MsgUsername:            "Username",
	MsgLoginButton:         "Sign in",
	MsgRegisterButton:      "Sign up",
	MsgToRegister:          "No account yet? Sign up",
	MsgToLogin:             "Already registered? Sign in",
	MsgLogout:              "Sign out",
	MsgLoginFailed:         "Sign in failed",
	MsgRegisterFailed:      "Sign up failed",
	MsgConnectionFailed:    "Cannot reach the server",
	MsgInvalidInput:        "Please check the entered data",
	MsgSessionExpired:      "Your session has expired, please sign in again",
	MsgUploadTitle:         "Upload a document",
	MsgDocType:             "Document type",
	MsgUploadButton:        "Upload",
	MsgSelectFile:          "Choose a file",
	MsgUploadFailed:        "Upload failed",
	MsgUploadSuccess:       "Document uploaded!",
	MsgUploadProcessing:    "Document uploaded! Processing has started...",
	MsgProcessSuccess:      "Document processed!",
	MsgProcessFailed:       "Document processing failed",
	MsgDocumentsTitle:      "My documents",
	MsgDocumentsFailed:     "Failed to load documents",
	MsgEmptyTitle:          "You have no documents yet",
	MsgEmptyHint:           "Upload your first document above",
	MsgFile:                "File",
	MsgSize:                "Size",
	MsgDate:                "Date",
	MsgTransactionCount:    "Transactions",
	MsgRecommendationCount: "Recommendations",
	MsgProcess:             "Process",
	MsgDetails:             "Details",
	MsgRecommendationsBtn:  "💡 Recommendations (%d)",
	MsgShowText:            "Show extracted text",
	MsgStatus:              "Status",
	MsgStatusUploaded:      "Uploaded",
	MsgStatusProcessing:    "Processing",
	MsgStatusProcessed:     "Processed",
	MsgStatusUnknown:       "Unknown",
	MsgTypeReceipt:         "Receipt",
	MsgTypeStatement:       "Statement",
	MsgTypeScreenshot:      "Screenshot",
	MsgDetailsTitle:        "Document details",
	MsgTransactionsHeader:  "Transactions (%d)",
	MsgRecommendationsHdr:  "Recommendations (%d)",
	MsgNoRecommendations:   "No recommendations found",
	MsgNoData:              "Nothing to show",
	MsgDetailsNotFound:     "No data found for this document. Try processing it again.",
	MsgRecsNotFound:        "No data found for this document",
	MsgRecommendationN:     "Recommendation %d",
	MsgPotentialSavings:    "💰 Potential savings: %s RUB",
	MsgSavings:             "Savings: %s RUB",
	MsgSource:              "Source: %s",
	MsgRecsTitle:           "💡 Spending optimization tips",
	MsgBack:                "Back",
	MsgSourceBankTariff:    "Bank tariffs",
	MsgSourceGovTariff:     "Government tariffs",
	MsgSourceEducation:     "Financial literacy",
	MsgSourceLLM:           "AI analysis",
	MsgCategoryFood:        "Food",
	MsgCategoryTransport:   "Transport",
	MsgCategoryUtilities:   "Utilities",
	MsgCategoryShopping:    "Shopping",
	MsgCategoryEntertain:   "Entertainment",
	MsgCategoryHealthcare:  "Healthcare",
	MsgCategoryEducation:   "Education",
	MsgCategoryOther:       "Other",
	MsgSignedInAs:          "Signed in as %s",
	MsgNotSignedIn:         "Not signed in",
	MsgTokenExpires:        "Access token valid until %s",
}
