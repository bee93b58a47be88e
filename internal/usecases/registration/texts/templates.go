package texts

// Тексты этапов регистрации

const Welcome = `🌟 Добро пожаловать в DailyBot!

Для создания персональных астрологических прогнозов мне нужно узнать о вас немного информации.

📝 Процесс займет 2-3 минуты и включает:
• Ваше имя
• Дата и время рождения
• Место рождения
• Текущее местоположение
• Время для получения прогнозов

Все данные используются только для астрологических расчетов и надежно защищены.

Как вас зовут? (Можете написать любое удобное имя)`

// NameAccepted %s - имя
const NameAccepted = `Приятно познакомиться, %s! 😊

📅 Теперь укажите дату вашего рождения в формате ДД.ММ.ГГГГ

Например: 15.03.1990`

// BirthDateAccepted %s - дата в формате ДД.ММ.ГГГГ
const BirthDateAccepted = `Отлично! Дата рождения: %s

⏰ Теперь укажите время рождения в формате ЧЧ:ММ

Например: 14:30

Если не знаете точное время, напишите "не знаю" - мы используем полдень для расчетов.`

// BirthTimeAccepted %s - время (с пометкой при неизвестном)
const BirthTimeAccepted = `Время рождения: %s

🏙️ Теперь укажите город или место рождения

Например: Москва, Санкт-Петербург, Екатеринбург

Это нужно для точных астрологических расчетов натальной карты.`

// BirthPlaceAccepted %s - место рождения
const BirthPlaceAccepted = `Место рождения: %s

📍 Теперь укажите где вы живете сейчас:

🌍 Поделиться геолокацией (рекомендуется)
🏙️ Или написать название города

Это нужно для актуальных прогнозов с учетом времени восхода и заката в вашем регионе.`

// LocationAccepted %s - описание местоположения
const LocationAccepted = `Текущее местоположение: %s

⏰ Последний вопрос! В какое время присылать вам ежедневные астропрогнозы?

Укажите время в формате ЧЧ:ММ
Например: 09:00, 19:30

Рекомендуем утреннее время (8:00-10:00) для планирования дня.`

// Completed %s - сводка профиля
const Completed = `🎉 Регистрация завершена!

%s

✨ Сейчас я подготовлю ваш первый персональный астрологический прогноз!

Используйте команды:
/astro - Получить прогноз на сегодня
/profile - Посмотреть свои данные
/help - Справка`

// Сообщения об ошибках валидации

const InvalidName = "Пожалуйста, введите ваше имя"
const InvalidBirthDateFormat = "Неверный формат даты. Используйте ДД.ММ.ГГГГ (например: 15.03.1990)"
const InvalidBirthDateRange = "Пожалуйста, укажите корректную дату рождения"
const InvalidBirthTime = `Неверный формат времени. Используйте ЧЧ:ММ (например: 14:30) или напишите "не знаю"`
const InvalidBirthPlace = "Пожалуйста, укажите место рождения"
const InvalidLocation = "Пожалуйста, укажите город или поделитесь геолокацией"
const InvalidForecastTime = "Неверный формат времени. Используйте ЧЧ:ММ (например: 09:00)"

// Системные сообщения

const AlreadyRegistered = `Вы уже зарегистрированы! 🎉

/astro - Получить прогноз на сегодня
/profile - Посмотреть свои данные

Чтобы пройти регистрацию заново, отправьте /start`

const UnknownStepRestart = `Что-то пошло не так с вашим профилем. Давайте начнем сначала! 🔄

Как вас зовут? (Можете написать любое удобное имя)`

const PersistenceRetry = "❌ Не удалось сохранить данные. Пожалуйста, повторите сообщение."

const BirthTimeUnknownDisplay = "12:00 (приблизительно)"
