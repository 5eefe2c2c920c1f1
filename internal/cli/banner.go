package cli

const banner = `
...........................................................
: ########::: #######::: ######:: ########: ####: ########:
: ##.... ##: ##.... ##: ##... ##:... ##..::. ##::... ##..::
: ##:::: ##: ##:::: ##: ##:::..::::: ##::::: ##::::: ##::::
: ########:: ##:::: ##:. ######::::: ##::::: ##::::: ##::::
: ##.....::: ##:::: ##::..... ##:::: ##::::: ##::::: ##::::
: ##:::::::: ##:::: ##: ##::: ##:::: ##::::: ##::::: ##::::
: ##::::::::. #######::. ######::::: ##:::: ####:::: ##::::
:..::::::::::.......::::......::::::..:::::....:::::..:::::

 Commands: help, register, users, info, login, post, posts, exit

`

type usage struct {
	cmd, args, desc string
}

var usages = []usage{
	{"help", "COMMAND", "Returns usage information"},
	{"register", "USER", "Create a new user"},
	{"users", "", "Lists all registered users"},
	{"info", "USER", "Shows a user's public key"},
	{"login", "USER", "Login as a user"},
	{"post", "", "Create a new post as the current user"},
	{"posts", "", "Lists posts created by the current user"},
	{"exit", "", "Leave postit"},
}
