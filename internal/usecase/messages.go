package usecase

import "github.com/iamvkosarev/recipe-telegram-bot/pkg/local"

var (
	msgWelcome = local.NewSet(
		"I am a recipe bot and will help when you don't know what to cook. Send /help to see the list of commands",
		local.NewTrans(
			local.Rus,
			"Я рецептный бот, помогу тебе, если ты не знаешь что приготовить. Напиши /help чтобы увидеть список команд",
		),
	)
	msgHelp = local.NewSet(
		"Available commands:\n/start - start the bot\n/help - show this message\n/recipe - get a random recipe",
		local.NewTrans(
			local.Rus,
			"Доступные команды:\n/start - Старт бота\n/help - Показать help сообщение\n/recipe - Получить рандомный рецепт",
		),
	)
	msgAskRestrictions = local.NewSet(
		"Do you want to add restrictions for the recipe?",
		local.NewTrans(local.Rus, "Хотите добавить ограничения для рецепта?"),
	)
	msgAskExcludeList = local.NewSet(
		`List the products you don't want to see in the recipe, separated by ",".`,
		local.NewTrans(local.Rus, `Напишите продукты которые вы не хотите видеть в рецепте через ",".`),
	)
	msgAskIncludeList = local.NewSet(
		`List the products the recipe must contain, separated by ",".`,
		local.NewTrans(local.Rus, `Напишите продукты которые вы хотите обязательно видеть в рецепте через ",".`),
	)
	msgProductNotFound = local.NewSet(
		"Product named %s was not found.",
		local.NewTrans(local.Rus, "Продукт с названием %s не был найден."),
	)
	msgProductsSaved = local.NewSet(
		"Products were saved.",
		local.NewTrans(local.Rus, "Продукты были успешно сохранены."),
	)
	msgRecipeFound = local.NewSet(
		"We found a recipe for you!",
		local.NewTrans(local.Rus, "Мы нашли рецепт для вас!"),
	)
	msgRecipeCard = local.NewSet(
		"Title: %s\nDescription: %s\nLink: %s",
		local.NewTrans(local.Rus, "Название: %s\nОписание: %s\nСсылка: %s"),
	)
	msgNoRecipeFound = local.NewSet(
		"We could not find a recipe for you. Try again with different restrictions",
		local.NewTrans(local.Rus, "Мы не смогли найти рецепт для вас. Попробуйте еще раз с другими ограничениями"),
	)
	msgNotUnderstood = local.NewSet(
		"Sorry, I don't understand you",
		local.NewTrans(local.Rus, "Извините, я вас не понимаю"),
	)
	msgAskContinue = local.NewSet(
		"Looks like you have an unfinished recipe request. Do you want to continue?",
		local.NewTrans(local.Rus, "Кажется у вас есть незаконченный запрос рецепта. Хотите продолжить?"),
	)
	msgStartHint = local.NewSet(
		"If you want a new recipe, send /recipe",
		local.NewTrans(local.Rus, "Если вы хотите получить новый рецепт, напишите /recipe"),
	)
	msgServerError = local.NewSet(
		"Something wrong with me. Try later",
		local.NewTrans(local.Rus, "Что-то пошло не так. Попробуйте позже"),
	)

	optExcludeProducts = local.NewSet("Exclude products", local.NewTrans(local.Rus, "Исключить продукты"))
	optIncludeProducts = local.NewSet("Required products", local.NewTrans(local.Rus, "Обязательные продукты"))
	optGiveRecipe      = local.NewSet("Get a recipe", local.NewTrans(local.Rus, "Получить рецепт"))
	optYes             = local.NewSet("Yes", local.NewTrans(local.Rus, "Да"))
	optNo              = local.NewSet("No", local.NewTrans(local.Rus, "Нет"))
)
